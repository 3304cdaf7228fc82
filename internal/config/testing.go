package config

import "go.uber.org/zap"

const (
	MockChatToken   = "chat-token"
	MockChatChannel = "#deployments"
	MockSpecURL     = "http://users.internal/swagger.json"
	MockRestApiID   = "a1b2c3d4"
	MockDocsBucket  = "api-docs"
)

func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestConfig returns a config that passes validation in either mode
// without reading the environment.
func NewTestConfig() *Config {
	return &Config{
		Logger: NewTestLogger(),
		Chat: ChatConfig{
			Provider: ChatProviderSlack,
			Token:    MockChatToken,
			Channel:  MockChatChannel,
		},
		Gateway: GatewayConfig{
			RestApiID:        MockRestApiID,
			EndpointType:     "REGIONAL",
			BackendURI:       "http://${stageVariables.backendHost}",
			ConnectionID:     "${stageVariables.vpcLinkId}",
			BinaryMediaTypes: []string{"image/png"},
		},
		Docs: DocsConfig{
			Bucket: MockDocsBucket,
			Prefix: "docs",
		},
		SpecURL: MockSpecURL,
	}
}
