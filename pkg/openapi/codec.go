package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	customerrors "deploy-notifier/pkg/errors"
)

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Parse decodes a JSON or YAML specification. The returned format is the one
// the input was written in.
func Parse(data []byte) (*Document, Format, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, FormatJSON, customerrors.MalformedSpecErr{Reason: "document is empty"}
	}

	if trimmed[0] == '{' {
		doc := &Document{}
		if err := json.Unmarshal(trimmed, doc); err != nil {
			return nil, FormatJSON, asMalformed(err)
		}
		return doc, FormatJSON, nil
	}

	doc, err := parseYAML(trimmed)
	return doc, FormatYAML, err
}

// Encode writes the document in the given format. Map keys are sorted so the
// output is stable across runs.
func Encode(doc *Document, format Format) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil || format == FormatJSON {
		return data, err
	}

	// Round trip through generic values so YAML gets the same field set
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(fromJSONNumbers(generic))
}

func parseYAML(data []byte) (*Document, error) {
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, customerrors.MalformedSpecErr{Reason: "invalid yaml", Err: err}
	}

	jsonData, err := json.Marshal(normalizeYAML(generic))
	if err != nil {
		return nil, customerrors.MalformedSpecErr{Reason: "yaml is not representable as json", Err: err}
	}

	doc := &Document{}
	if err := json.Unmarshal(jsonData, doc); err != nil {
		return nil, asMalformed(err)
	}
	return doc, nil
}

func asMalformed(err error) error {
	var specErr customerrors.MalformedSpecErr
	if errors.As(err, &specErr) {
		return err
	}
	return customerrors.MalformedSpecErr{Reason: "invalid json", Err: err}
}

// normalizeYAML converts mappings with non-string keys, such as unquoted
// response codes, into string-keyed maps that encoding/json accepts.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, item := range val {
			out[key] = normalizeYAML(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for key, item := range val {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return val
	}
}

// fromJSONNumbers swaps json.Number for int64 or float64 so YAML renders
// numbers rather than quoted strings.
func fromJSONNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for key, item := range val {
			val[key] = fromJSONNumbers(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = fromJSONNumbers(item)
		}
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return val
	}
}
