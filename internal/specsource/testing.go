package specsource

import (
	"context"

	"github.com/stretchr/testify/mock"
)

const (
	FetchMethod = "Fetch"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if body := args.Get(0); body != nil {
		return body.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}
