package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	customerrors "deploy-notifier/pkg/errors"
)

const (
	pathsKey    = "paths"
	serversKey  = "servers"
	producesKey = "produces"

	IntegrationKey = "x-amazon-apigateway-integration"
)

var errNotMapping = errors.New("operation is not a mapping")

// Methods that are treated as operations within a path item. Any other key
// on a path item is carried through untouched.
var httpMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"options": {},
	"head":    {},
	"patch":   {},
	"trace":   {},
}

// Document is an OpenAPI/Swagger document. Only the parts the integrator
// walks are typed, everything else is kept in Extra so nothing is lost on
// re-encoding.
type Document struct {
	Paths map[string]*PathItem
	Extra map[string]interface{}
}

type PathItem struct {
	Operations map[string]*Operation
	Extra      map[string]interface{}
}

type Operation struct {
	Produces    []string
	Integration *Integration
	Extra       map[string]interface{}
}

type Integration struct {
	Type                string                         `json:"type"`
	URI                 string                         `json:"uri,omitempty"`
	HTTPMethod          string                         `json:"httpMethod,omitempty"`
	ConnectionType      string                         `json:"connectionType,omitempty"`
	ConnectionID        string                         `json:"connectionId,omitempty"`
	PassthroughBehavior string                         `json:"passthroughBehavior,omitempty"`
	ContentHandling     string                         `json:"contentHandling,omitempty"`
	RequestParameters   map[string]string              `json:"requestParameters,omitempty"`
	RequestTemplates    map[string]string              `json:"requestTemplates,omitempty"`
	Responses           map[string]IntegrationResponse `json:"responses,omitempty"`
}

type IntegrationResponse struct {
	StatusCode         string            `json:"statusCode"`
	ResponseParameters map[string]string `json:"responseParameters,omitempty"`
	ResponseTemplates  map[string]string `json:"responseTemplates,omitempty"`
}

func isHTTPMethod(key string) bool {
	_, ok := httpMethods[strings.ToLower(key)]
	return ok
}

// Servers returns the top-level servers list, or nil if there is none.
func (d *Document) Servers() []interface{} {
	servers, _ := d.Extra[serversKey].([]interface{})
	return servers
}

// Operation looks up an operation by method, ignoring case.
func (p *PathItem) Operation(method string) (*Operation, bool) {
	for key, op := range p.Operations {
		if strings.EqualFold(key, method) {
			return op, true
		}
	}
	return nil, false
}

// SetOperation replaces any operation registered under the method, ignoring
// case, and stores op under the lowercased method.
func (p *PathItem) SetOperation(method string, op *Operation) {
	if p.Operations == nil {
		p.Operations = make(map[string]*Operation, 1)
	}
	for key := range p.Operations {
		if strings.EqualFold(key, method) {
			delete(p.Operations, key)
		}
	}
	p.Operations[strings.ToLower(method)] = op
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+1)
	for key, val := range d.Extra {
		out[key] = val
	}
	paths := make(map[string]*PathItem, len(d.Paths))
	for path, item := range d.Paths {
		paths[path] = item
	}
	out[pathsKey] = paths
	return json.Marshal(out)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return customerrors.MalformedSpecErr{Reason: "document is not a mapping", Err: err}
	}
	if raw == nil {
		return customerrors.MalformedSpecErr{Reason: "document is empty"}
	}

	rawPaths, ok := raw[pathsKey]
	if !ok {
		return customerrors.MalformedSpecErr{Reason: "missing paths"}
	}
	var paths map[string]json.RawMessage
	if err := json.Unmarshal(rawPaths, &paths); err != nil || paths == nil {
		return customerrors.MalformedSpecErr{Reason: "paths is not a mapping", Err: err}
	}

	doc := Document{
		Paths: make(map[string]*PathItem, len(paths)),
	}
	for path, rawItem := range paths {
		item, err := decodePathItem(path, rawItem)
		if err != nil {
			return err
		}
		doc.Paths[path] = item
	}

	delete(raw, pathsKey)
	extra, err := decodeExtra(raw)
	if err != nil {
		return customerrors.MalformedSpecErr{Reason: "invalid top-level field", Err: err}
	}
	doc.Extra = extra

	*d = doc
	return nil
}

func (p PathItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Extra)+len(p.Operations))
	for key, val := range p.Extra {
		out[key] = val
	}
	for method, op := range p.Operations {
		out[method] = op
	}
	return json.Marshal(out)
}

func (o Operation) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(o.Extra)+2)
	for key, val := range o.Extra {
		out[key] = val
	}
	if o.Produces != nil {
		out[producesKey] = o.Produces
	}
	if o.Integration != nil {
		out[IntegrationKey] = o.Integration
	}
	return json.Marshal(out)
}

func decodePathItem(path string, data []byte) (*PathItem, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, customerrors.MalformedSpecErr{Path: path, Reason: "path item is not a mapping", Err: err}
	}

	item := &PathItem{
		Operations: make(map[string]*Operation),
	}
	extra := make(map[string]json.RawMessage)
	for key, val := range raw {
		if !isHTTPMethod(key) {
			extra[key] = val
			continue
		}
		op, err := decodeOperation(val)
		if err != nil {
			return nil, customerrors.MalformedSpecErr{Path: path, Reason: "invalid " + key + " operation", Err: err}
		}
		item.Operations[key] = op
	}

	var err error
	if item.Extra, err = decodeExtra(extra); err != nil {
		return nil, customerrors.MalformedSpecErr{Path: path, Reason: "invalid path field", Err: err}
	}
	return item, nil
}

func decodeOperation(data []byte) (*Operation, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	} else if raw == nil {
		return nil, errNotMapping
	}

	op := &Operation{}
	if rawProduces, ok := raw[producesKey]; ok && !isNull(rawProduces) {
		if err := json.Unmarshal(rawProduces, &op.Produces); err != nil {
			return nil, err
		}
		delete(raw, producesKey)
	}

	var err error
	op.Extra, err = decodeExtra(raw)
	return op, err
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// decodeExtra decodes each raw field keeping numbers as json.Number so
// values survive a round trip unchanged.
func decodeExtra(raw map[string]json.RawMessage) (map[string]interface{}, error) {
	extra := make(map[string]interface{}, len(raw))
	for key, val := range raw {
		dec := json.NewDecoder(bytes.NewReader(val))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		extra[key] = v
	}
	return extra, nil
}
