package handler

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"deploy-notifier/internal/config"
	"deploy-notifier/internal/deployment"
	"deploy-notifier/internal/docs"
	"deploy-notifier/internal/specsource"
	"deploy-notifier/pkg/aws/account"
	"deploy-notifier/pkg/aws/gateway"
	"deploy-notifier/pkg/aws/s3"
	"deploy-notifier/pkg/chat"
	"deploy-notifier/pkg/discord"
	"deploy-notifier/pkg/openapi"
	"deploy-notifier/pkg/slack"
)

const (
	loggerName = "handler"
)

type Handler struct {
	cfg    *config.Config
	logger *zap.Logger

	notifier   chat.Notifier
	integrator *openapi.Integrator
	specClient specsource.ClientIFace
	docsClient docs.ClientIFace

	// AWS
	accountClient account.ClientIFace
	gatewayClient gateway.ClientIFace
	s3Client      s3.ClientIFace
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		cfg:    cfg,
		logger: cfg.Logger.Named(loggerName),
		integrator: openapi.NewIntegrator(
			openapi.WithBackendURI(cfg.Gateway.BackendURI),
			openapi.WithConnectionID(cfg.Gateway.ConnectionID),
			openapi.WithBinaryMediaTypes(cfg.Gateway.BinaryMediaTypes...),
		),
		specClient:    specsource.New(),
		accountClient: account.New(),
		gatewayClient: gateway.New(),
		s3Client:      s3.New(),
	}
	h.docsClient = docs.New(cfg, h.s3Client)

	notifier, err := newNotifier(cfg, h.logger)
	if err != nil {
		return nil, err
	}
	h.notifier = notifier

	return h, nil
}

func newNotifier(cfg *config.Config, logger *zap.Logger) (chat.Notifier, error) {
	if cfg.Silent {
		return chat.NotifierFunc(func(_ context.Context, msg chat.Message) error {
			logger.Info("silent mode, message not sent", zap.Stringer("message", msg))
			return nil
		}), nil
	}

	switch cfg.Chat.Provider {
	case config.ChatProviderDiscord:
		notifier, err := discord.New(cfg.Chat.Token, cfg.Chat.Channel)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create discord session")
		}
		return notifier, nil
	default:
		return slack.New(cfg.Chat.Token, cfg.Chat.Channel), nil
	}
}

func (h *Handler) Handle(ctx context.Context, event events.SNSEvent) error {
	if err := h.connect(); err != nil {
		h.logger.Error("failed to connect to aws", zap.Error(err))
		return err
	}

	stage, err := h.accountClient.GetStage(ctx)
	if err != nil {
		h.logger.Error("failed to resolve stage", zap.Error(err))
		return err
	}

	var multiErr error
	for _, record := range event.Records {
		if err := h.handleRecord(ctx, stage, record.SNS.Message); err != nil {
			multiErr = multierr.Append(multiErr, err)
		}
	}
	return multiErr
}

func (h *Handler) connect() error {
	if err := h.accountClient.Connect(); err != nil {
		return err
	}

	if h.cfg.PublishSpec {
		awsSession := h.accountClient.GetSession()
		h.gatewayClient.ConnectWithSession(awsSession)
		h.s3Client.ConnectWithSession(awsSession)
	}
	return nil
}

func (h *Handler) handleRecord(ctx context.Context, stage, message string) error {
	h.logger.Info("message received", zap.String("message", message))

	n, err := deployment.Parse(message)
	if err != nil {
		h.logger.Warn("ignoring unparsable message", zap.Error(err))
		return nil
	}

	if n.IsDebug() {
		h.logger.Info("debug deployment, no message sent", zap.String("trigger", n.EventTriggerName))
		return nil
	}

	if err := h.process(ctx, stage, n); err != nil {
		h.logger.Error(
			"post deployment failed",
			zap.String("app", n.ApplicationName),
			zap.String("deployment", n.DeploymentID),
			zap.Error(err),
		)
		if alertErr := h.notifier.Notify(ctx, deployment.AlertMessage(stage, err)); alertErr != nil {
			h.logger.Error("failed to send alert", zap.Error(alertErr))
		}
		return err
	}
	return nil
}

func (h *Handler) process(ctx context.Context, stage string, n *deployment.Notification) error {
	if err := h.notifier.Notify(ctx, n.Message(stage)); err != nil {
		return err
	}

	if !h.cfg.PublishSpec || !n.Succeeded() {
		return nil
	}
	return h.publish(ctx, stage, n)
}

func (h *Handler) publish(ctx context.Context, stage string, n *deployment.Notification) error {
	// Give the new tasks time to start serving the updated spec
	if err := sleep(ctx, h.cfg.PublishDelay); err != nil {
		return err
	}

	raw, err := h.specClient.Fetch(ctx, h.cfg.SpecURL)
	if err != nil {
		return err
	}

	doc, _, err := openapi.Parse(raw)
	if err != nil {
		return errors.Wrap(err, "failed to parse spec")
	}
	if _, err := h.integrator.Transform(doc); err != nil {
		return errors.Wrap(err, "failed to transform spec")
	}
	spec, err := openapi.Encode(doc, openapi.FormatJSON)
	if err != nil {
		return errors.Wrap(err, "failed to encode spec")
	}

	restApiId := h.cfg.Gateway.RestApiID
	if err := h.gatewayClient.PutSpec(ctx, restApiId, spec, h.cfg.Gateway.EndpointType); err != nil {
		return err
	}

	deployStage := h.cfg.Gateway.Stage
	if deployStage == "" {
		deployStage = stage
	}
	if err := h.gatewayClient.Deploy(ctx, restApiId, deployStage); err != nil {
		return err
	}

	h.logger.Info(
		"spec deployed",
		zap.String("restApiId", restApiId),
		zap.String("stage", deployStage),
		zap.Int("paths", len(doc.Paths)),
	)

	return h.docsClient.Publish(ctx, n.AppName(), spec)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
