package openapi

import (
	"net/http"
	"regexp"
	"strings"

	customerrors "deploy-notifier/pkg/errors"
)

const (
	DefaultBackendURI   = "http://${stageVariables.backendHost}"
	DefaultConnectionID = "${stageVariables.vpcLinkId}"

	IntegrationTypeHTTPProxy = "http_proxy"
	IntegrationTypeMock      = "mock"

	ConnectionTypeVPCLink  = "VPC_LINK"
	PassthroughWhenNoMatch = "when_no_match"
	ContentHandlingBinary  = "CONVERT_TO_BINARY"

	jsonMediaType          = "application/json"
	statusOKTemplate       = `{"statusCode": 200}`
	defaultResponseKey     = "default"
	requestPathParamPrefix = "integration.request.path."
	methodPathParamPrefix  = "method.request.path."
)

var (
	DefaultBinaryMediaTypes = []string{"image/png"}

	pathParamPattern = regexp.MustCompile(`\{(.+?)\}`)
)

// Integrator annotates every operation of a document with an API Gateway
// proxy integration and adds a CORS preflight operation to every path.
type Integrator struct {
	BackendURI       string
	ConnectionID     string
	BinaryMediaTypes []string
}

type Option func(*Integrator)

func WithBackendURI(uri string) Option {
	return func(i *Integrator) {
		i.BackendURI = uri
	}
}

func WithConnectionID(id string) Option {
	return func(i *Integrator) {
		i.ConnectionID = id
	}
}

func WithBinaryMediaTypes(mediaTypes ...string) Option {
	return func(i *Integrator) {
		i.BinaryMediaTypes = mediaTypes
	}
}

func NewIntegrator(opts ...Option) *Integrator {
	i := &Integrator{
		BackendURI:       DefaultBackendURI,
		ConnectionID:     DefaultConnectionID,
		BinaryMediaTypes: append([]string(nil), DefaultBinaryMediaTypes...),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Transform mutates doc in place and returns it. The whole document is
// validated first, so on error doc is left exactly as it was passed in.
// Running Transform again regenerates the same integration and CORS entries.
func (i *Integrator) Transform(doc *Document) (*Document, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	for path, item := range doc.Paths {
		for method, op := range item.Operations {
			// Replaced by the CORS operation below
			if strings.EqualFold(method, http.MethodOptions) {
				continue
			}
			op.Integration = i.integration(path, method, op)
		}
		item.SetOperation(http.MethodOptions, corsOperation())
	}

	return doc, nil
}

func (i *Integrator) integration(path, method string, op *Operation) *Integration {
	integration := &Integration{
		Type:                IntegrationTypeHTTPProxy,
		URI:                 i.BackendURI + path,
		HTTPMethod:          strings.ToUpper(method),
		ConnectionType:      ConnectionTypeVPCLink,
		ConnectionID:        i.ConnectionID,
		PassthroughBehavior: PassthroughWhenNoMatch,
		RequestTemplates: map[string]string{
			jsonMediaType: statusOKTemplate,
		},
		Responses: map[string]IntegrationResponse{
			defaultResponseKey: {
				StatusCode: "200",
				ResponseTemplates: map[string]string{
					jsonMediaType: statusOKTemplate,
				},
			},
		},
	}

	if i.isBinary(op.Produces) {
		integration.ContentHandling = ContentHandlingBinary
	}

	if params := PathParameters(path); len(params) > 0 {
		integration.RequestParameters = make(map[string]string, len(params))
		for _, param := range params {
			integration.RequestParameters[requestPathParamPrefix+param] = methodPathParamPrefix + param
		}
	}

	return integration
}

func (i *Integrator) isBinary(produces []string) bool {
	for _, mediaType := range produces {
		for _, binaryType := range i.BinaryMediaTypes {
			if strings.EqualFold(mediaType, binaryType) {
				return true
			}
		}
	}
	return false
}

// PathParameters returns the names of the {param} tokens in a path template,
// in the order they appear. Greedy tokens such as {proxy+} are named without
// the trailing plus.
func PathParameters(path string) []string {
	matches := pathParamPattern.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}

	params := make([]string, 0, len(matches))
	for _, match := range matches {
		params = append(params, strings.TrimSuffix(match[1], "+"))
	}
	return params
}

func validate(doc *Document) error {
	if doc == nil || doc.Paths == nil {
		return customerrors.MalformedSpecErr{Reason: "missing paths"}
	}
	for path, item := range doc.Paths {
		if item == nil {
			return customerrors.MalformedSpecErr{Path: path, Reason: "path item is not a mapping"}
		}
		for method, op := range item.Operations {
			if op == nil {
				return customerrors.MalformedSpecErr{Path: path, Reason: "invalid " + method + " operation", Err: errNotMapping}
			}
		}
	}
	return nil
}
