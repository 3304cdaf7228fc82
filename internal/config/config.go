package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	customerrors "deploy-notifier/pkg/errors"
)

const (
	ChatProviderSlack   = "slack"
	ChatProviderDiscord = "discord"

	// Env variables required for every handler
	EnvChatToken   = "CHAT_TOKEN"
	EnvChatChannel = "CHAT_CHANNEL"

	// Env variables required when publishing specifications
	EnvSpecURL          = "SPEC_URL"
	EnvGatewayRestApiID = "GATEWAY_REST_API_ID"
	EnvDocsBucket       = "DOCS_BUCKET"
)

type Config struct {
	Logger *zap.Logger `ignored:"true"`

	// PublishSpec is set by the entry point rather than the environment
	PublishSpec bool `ignored:"true"`

	Chat         ChatConfig    `envconfig:"CHAT"`
	Gateway      GatewayConfig `envconfig:"GATEWAY"`
	Docs         DocsConfig    `envconfig:"DOCS"`
	Silent       bool          `envconfig:"SILENT" default:"false"`
	SpecURL      string        `envconfig:"SPEC_URL"`
	PublishDelay time.Duration `envconfig:"PUBLISH_DELAY" default:"30s"`
}

type ChatConfig struct {
	Provider string `envconfig:"PROVIDER" default:"slack"`
	Token    string `envconfig:"TOKEN"`
	Channel  string `envconfig:"CHANNEL"`
}

type GatewayConfig struct {
	RestApiID        string   `envconfig:"REST_API_ID"`
	Stage            string   `envconfig:"STAGE"`
	EndpointType     string   `envconfig:"ENDPOINT_TYPE" default:"REGIONAL"`
	BackendURI       string   `envconfig:"BACKEND_URI" default:"http://${stageVariables.backendHost}"`
	ConnectionID     string   `envconfig:"CONNECTION_ID" default:"${stageVariables.vpcLinkId}"`
	BinaryMediaTypes []string `envconfig:"BINARY_MEDIA_TYPES" default:"image/png"`
}

type DocsConfig struct {
	Bucket string `envconfig:"BUCKET"`
	Prefix string `envconfig:"PREFIX" default:"docs"`
}

func New() *Config {
	return &Config{
		Logger: NewLogger(),
	}
}

func NewLogger() *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.DisableStacktrace = true
	logger, _ := logCfg.Build()
	return logger
}

func (c *Config) Load() error {
	if err := envconfig.Process("", c); err != nil {
		return err
	}

	return c.validate()
}

func (c *Config) validate() error {
	c.Chat.Provider = strings.ToLower(c.Chat.Provider)
	if c.Chat.Provider != ChatProviderSlack && c.Chat.Provider != ChatProviderDiscord {
		return fmt.Errorf("unsupported chat provider: [%s]", c.Chat.Provider)
	}

	required := map[string]string{
		EnvChatToken:   c.Chat.Token,
		EnvChatChannel: c.Chat.Channel,
	}
	if c.PublishSpec {
		required[EnvSpecURL] = c.SpecURL
		required[EnvGatewayRestApiID] = c.Gateway.RestApiID
		required[EnvDocsBucket] = c.Docs.Bucket
	}
	for _, val := range required {
		if val == "" {
			return customerrors.MissingEnvErr{EnvMap: required}
		}
	}

	return nil
}
