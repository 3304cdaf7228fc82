package chat

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	NotifyMethod = "Notify"
)

// Ensure MockNotifier implements Notifier
var _ Notifier = (*MockNotifier)(nil)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
