package docs

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	PublishMethod = "Publish"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Publish(ctx context.Context, app string, spec []byte) error {
	args := m.Called(ctx, app, spec)
	return args.Error(0)
}
