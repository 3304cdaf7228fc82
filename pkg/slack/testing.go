package slack

import (
	"context"

	slackapi "github.com/nlopes/slack"
	"github.com/stretchr/testify/mock"
)

const (
	PostMessageContextMethod = "PostMessageContext"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	args := m.Called(ctx, channelID, options)
	return args.String(0), args.String(1), args.Error(2)
}
