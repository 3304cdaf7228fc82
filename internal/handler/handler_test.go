package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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
	mockSpec = `{"swagger": "2.0", "paths": {"/users/{id}": {"get": {"produces": ["application/json"]}}}}`
)

var mockErr = errors.New("mock error")

func notificationMessage(t *testing.T, status, trigger string) string {
	t.Helper()
	body, err := json.Marshal(deployment.Notification{
		Region:           "eu-west-1",
		EventTriggerName: trigger,
		ApplicationName:  "acme-users-api",
		DeploymentID:     "d-ABC123",
		Status:           status,
	})
	require.NoError(t, err)
	return string(body)
}

func snsEvent(messages ...string) events.SNSEvent {
	event := events.SNSEvent{}
	for _, message := range messages {
		event.Records = append(event.Records, events.SNSEventRecord{
			SNS: events.SNSEntity{Message: message},
		})
	}
	return event
}

type mocks struct {
	account  *account.MockClient
	gateway  *gateway.MockClient
	s3       *s3.MockClient
	spec     *specsource.MockClient
	docs     *docs.MockClient
	notifier *chat.MockNotifier
}

func newTestHandler(cfg *config.Config) (*Handler, *mocks) {
	m := &mocks{
		account:  new(account.MockClient),
		gateway:  new(gateway.MockClient),
		s3:       new(s3.MockClient),
		spec:     new(specsource.MockClient),
		docs:     new(docs.MockClient),
		notifier: new(chat.MockNotifier),
	}

	awsSession := &session.Session{}
	m.account.On(account.ConnectMethod).Return(nil)
	m.account.On(account.GetSessionMethod).Return(awsSession)
	m.account.On(account.GetStageMethod, mock.Anything).Return(account.StageStaging, nil)
	m.gateway.On(gateway.ConnectWithSessionMethod, awsSession).Return()
	m.s3.On(s3.ConnectWithSessionMethod, awsSession).Return()

	h := &Handler{
		cfg:           cfg,
		logger:        config.NewTestLogger(),
		notifier:      m.notifier,
		integrator:    openapi.NewIntegrator(),
		specClient:    m.spec,
		docsClient:    m.docs,
		accountClient: m.account,
		gatewayClient: m.gateway,
		s3Client:      m.s3,
	}
	return h, m
}

func isAlert(msg chat.Message) bool {
	return msg.Author == "POST_DEPLOYMENT - STAGING" && msg.Severity == chat.SeverityDanger
}

func Test_New(t *testing.T) {
	tests := []struct {
		name        string
		provider    string
		silent      bool
		expNotifier interface{}
	}{
		{name: "Slack notifier", provider: config.ChatProviderSlack, expNotifier: &slack.Notifier{}},
		{name: "Discord notifier", provider: config.ChatProviderDiscord, expNotifier: &discord.Notifier{}},
		{name: "Silent notifier", provider: config.ChatProviderSlack, silent: true, expNotifier: chat.NotifierFunc(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Chat.Provider = tt.provider
			cfg.Silent = tt.silent

			h, err := New(cfg)

			require.NoError(t, err)
			require.NotNil(t, h)
			assert.IsType(t, tt.expNotifier, h.notifier)
			assert.NotNil(t, h.docsClient)
		})
	}
}

func Test_SilentNotifier(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Silent = true

	notifier, err := newNotifier(cfg, config.NewTestLogger())
	require.NoError(t, err)

	assert.NoError(t, notifier.Notify(context.Background(), chat.Message{Text: "not sent"}))
}

func Test_Handler_Handle_Notify(t *testing.T) {
	succeeded := notificationMessage(t, deployment.StatusSucceeded, "feat: add avatars")
	n, err := deployment.Parse(succeeded)
	require.NoError(t, err)

	tests := []struct {
		name        string
		message     string
		notifyErr   error
		expNotified bool
		expErr      bool
	}{
		{
			name:        "Happy path - Deployment announced",
			message:     succeeded,
			expNotified: true,
		},
		{
			name:    "Happy path - Unparsable message skipped",
			message: "not json",
		},
		{
			name:    "Happy path - Debug deployment skipped",
			message: notificationMessage(t, deployment.StatusSucceeded, "[DEBUG] testing"),
		},
		{
			name:        "Sad path - Notify error sends alert",
			message:     succeeded,
			notifyErr:   mockErr,
			expNotified: true,
			expErr:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(config.NewTestConfig())
			m.notifier.On(chat.NotifyMethod, mock.Anything, n.Message(account.StageStaging)).Return(tt.notifyErr)
			m.notifier.On(chat.NotifyMethod, mock.Anything, mock.MatchedBy(isAlert)).Return(nil)

			err := h.Handle(context.Background(), snsEvent(tt.message))

			if tt.expErr {
				assert.ErrorIs(t, err, tt.notifyErr)
				m.notifier.AssertCalled(t, chat.NotifyMethod, mock.Anything, deployment.AlertMessage(account.StageStaging, tt.notifyErr))
			} else {
				assert.NoError(t, err)
			}

			if tt.expNotified {
				m.notifier.AssertCalled(t, chat.NotifyMethod, mock.Anything, n.Message(account.StageStaging))
			} else {
				m.notifier.AssertNotCalled(t, chat.NotifyMethod, mock.Anything, mock.Anything)
			}

			// Notify mode never touches the publishing clients
			m.gateway.AssertNotCalled(t, gateway.ConnectWithSessionMethod, mock.Anything)
			m.spec.AssertNotCalled(t, specsource.FetchMethod, mock.Anything, mock.Anything)
		})
	}
}

func Test_Handler_Handle_Aws(t *testing.T) {
	tests := []struct {
		name       string
		connectErr error
		stageErr   error
	}{
		{name: "Sad path - AWS connection error", connectErr: mockErr},
		{name: "Sad path - Stage lookup error", stageErr: mockErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mocks{
				account:  new(account.MockClient),
				notifier: new(chat.MockNotifier),
			}
			m.account.On(account.ConnectMethod).Return(tt.connectErr)
			m.account.On(account.GetStageMethod, mock.Anything).Return("", tt.stageErr)

			h := &Handler{
				cfg:           config.NewTestConfig(),
				logger:        config.NewTestLogger(),
				notifier:      m.notifier,
				accountClient: m.account,
			}

			err := h.Handle(context.Background(), snsEvent(notificationMessage(t, deployment.StatusSucceeded, "fix")))

			assert.ErrorIs(t, err, mockErr)
			m.notifier.AssertNotCalled(t, chat.NotifyMethod, mock.Anything, mock.Anything)
		})
	}
}

func Test_Handler_Handle_Publish(t *testing.T) {
	var putSpec []byte
	cfg := config.NewTestConfig()
	cfg.PublishSpec = true

	h, m := newTestHandler(cfg)
	m.notifier.On(chat.NotifyMethod, mock.Anything, mock.Anything).Return(nil)
	m.spec.On(specsource.FetchMethod, mock.Anything, config.MockSpecURL).Return([]byte(mockSpec), nil)
	m.gateway.On(gateway.PutSpecMethod, mock.Anything, config.MockRestApiID, mock.Anything, "REGIONAL").
		Run(func(args mock.Arguments) {
			putSpec = args.Get(2).([]byte)
		}).
		Return(nil)
	m.gateway.On(gateway.DeployMethod, mock.Anything, config.MockRestApiID, account.StageStaging).Return(nil)
	m.docs.On(docs.PublishMethod, mock.Anything, "USERS", mock.Anything).Return(nil)

	err := h.Handle(context.Background(), snsEvent(notificationMessage(t, deployment.StatusSucceeded, "feat: add avatars")))

	require.NoError(t, err)
	m.gateway.AssertExpectations(t)
	m.s3.AssertExpectations(t)
	m.docs.AssertExpectations(t)
	m.notifier.AssertNumberOfCalls(t, chat.NotifyMethod, 1)

	// The pushed spec carries the gateway integration and CORS operation
	doc, format, err := openapi.Parse(putSpec)
	require.NoError(t, err)
	assert.Equal(t, openapi.FormatJSON, format)
	item := doc.Paths["/users/{id}"]
	require.NotNil(t, item)
	get, ok := item.Operation("get")
	require.True(t, ok)
	require.NotNil(t, get.Integration)
	assert.Equal(t, "GET", get.Integration.HTTPMethod)
	_, ok = item.Operation("options")
	assert.True(t, ok)

	// Docs receive the same document that was pushed to the gateway
	m.docs.AssertCalled(t, docs.PublishMethod, mock.Anything, "USERS", putSpec)
}

func Test_Handler_Handle_PublishStage(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.PublishSpec = true
	cfg.Gateway.Stage = "v1"

	h, m := newTestHandler(cfg)
	m.notifier.On(chat.NotifyMethod, mock.Anything, mock.Anything).Return(nil)
	m.spec.On(specsource.FetchMethod, mock.Anything, mock.Anything).Return([]byte(mockSpec), nil)
	m.gateway.On(gateway.PutSpecMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.gateway.On(gateway.DeployMethod, mock.Anything, config.MockRestApiID, "v1").Return(nil)
	m.docs.On(docs.PublishMethod, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := h.Handle(context.Background(), snsEvent(notificationMessage(t, deployment.StatusSucceeded, "fix")))

	require.NoError(t, err)
	m.gateway.AssertCalled(t, gateway.DeployMethod, mock.Anything, config.MockRestApiID, "v1")
}

func Test_Handler_Handle_PublishErrors(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		fetchErr  error
		putErr    error
		deployErr error
		docsErr   error
	}{
		{name: "Sad path - Fetch error", fetchErr: mockErr},
		{name: "Sad path - Malformed spec", spec: `{"swagger": "2.0"}`},
		{name: "Sad path - Put spec error", spec: mockSpec, putErr: mockErr},
		{name: "Sad path - Deploy error", spec: mockSpec, deployErr: mockErr},
		{name: "Sad path - Docs publish error", spec: mockSpec, docsErr: mockErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.PublishSpec = true

			h, m := newTestHandler(cfg)
			m.notifier.On(chat.NotifyMethod, mock.Anything, mock.Anything).Return(nil)
			var fetched []byte
			if tt.spec != "" {
				fetched = []byte(tt.spec)
			}
			m.spec.On(specsource.FetchMethod, mock.Anything, mock.Anything).Return(fetched, tt.fetchErr)
			m.gateway.On(gateway.PutSpecMethod, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(tt.putErr)
			m.gateway.On(gateway.DeployMethod, mock.Anything, mock.Anything, mock.Anything).Return(tt.deployErr)
			m.docs.On(docs.PublishMethod, mock.Anything, mock.Anything, mock.Anything).Return(tt.docsErr)

			err := h.Handle(context.Background(), snsEvent(notificationMessage(t, deployment.StatusSucceeded, "fix")))

			require.Error(t, err)
			m.notifier.AssertNumberOfCalls(t, chat.NotifyMethod, 2)
			m.notifier.AssertCalled(t, chat.NotifyMethod, mock.Anything, mock.MatchedBy(func(msg chat.Message) bool {
				return isAlert(msg) && msg.Text == err.Error()
			}))
		})
	}
}

func Test_Handler_Handle_PublishSkipped(t *testing.T) {
	for _, status := range []string{deployment.StatusFailed, deployment.StatusStopped} {
		t.Run(status, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.PublishSpec = true

			h, m := newTestHandler(cfg)
			m.notifier.On(chat.NotifyMethod, mock.Anything, mock.Anything).Return(nil)

			err := h.Handle(context.Background(), snsEvent(notificationMessage(t, status, "fix")))

			require.NoError(t, err)
			m.notifier.AssertNumberOfCalls(t, chat.NotifyMethod, 1)
			m.spec.AssertNotCalled(t, specsource.FetchMethod, mock.Anything, mock.Anything)
		})
	}
}

func Test_Handler_Handle_MultipleRecords(t *testing.T) {
	h, m := newTestHandler(config.NewTestConfig())
	m.notifier.On(chat.NotifyMethod, mock.Anything, mock.MatchedBy(func(msg chat.Message) bool {
		return strings.HasPrefix(msg.Author, "DEPLOYMENT")
	})).Return(mockErr)
	m.notifier.On(chat.NotifyMethod, mock.Anything, mock.MatchedBy(isAlert)).Return(nil)

	err := h.Handle(context.Background(), snsEvent(
		notificationMessage(t, deployment.StatusSucceeded, "first"),
		"not json",
		notificationMessage(t, deployment.StatusFailed, "second"),
	))

	require.Error(t, err)
	// Both failures are reported, the unparsable record is not
	assert.Equal(t, 2, strings.Count(err.Error(), mockErr.Error()))
	m.notifier.AssertNumberOfCalls(t, chat.NotifyMethod, 4)
}

func Test_sleep(t *testing.T) {
	assert.NoError(t, sleep(context.Background(), 0))
	assert.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
