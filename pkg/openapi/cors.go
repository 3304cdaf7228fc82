package openapi

import "fmt"

const (
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"

	corsAllowAll            = "'*'"
	methodResponseHeaderFmt = "method.response.header.%s"
)

var corsHeaders = []string{HeaderAllowHeaders, HeaderAllowMethods, HeaderAllowOrigin}

// corsOperation builds the preflight operation answered by a mock integration.
// A new value is built on every call so paths never share maps.
func corsOperation() *Operation {
	headers := make(map[string]interface{}, len(corsHeaders))
	responseParams := make(map[string]string, len(corsHeaders))
	for _, header := range corsHeaders {
		headers[header] = map[string]interface{}{"type": "string"}
		responseParams[fmt.Sprintf(methodResponseHeaderFmt, header)] = corsAllowAll
	}

	return &Operation{
		Produces: []string{jsonMediaType},
		Extra: map[string]interface{}{
			"summary":  "CORS support",
			"consumes": []interface{}{jsonMediaType},
			"responses": map[string]interface{}{
				"200": map[string]interface{}{
					"description": "Default response for CORS method",
					"headers":     headers,
					"content":     map[string]interface{}{},
				},
			},
		},
		Integration: &Integration{
			Type: IntegrationTypeMock,
			RequestTemplates: map[string]string{
				jsonMediaType: statusOKTemplate,
			},
			Responses: map[string]IntegrationResponse{
				defaultResponseKey: {
					StatusCode:         "200",
					ResponseParameters: responseParams,
					ResponseTemplates: map[string]string{
						jsonMediaType: "",
					},
				},
			},
		},
	}
}
