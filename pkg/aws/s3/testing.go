package s3

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod            = "Connect"
	ConnectWithSessionMethod = "ConnectWithSession"
	GetSessionMethod         = "GetSession"
	PutMethod                = "Put"

	putObjectMethod = "PutObjectWithContext"
)

// Ensure MockClient implements ClientIFace
var _ ClientIFace = (*MockClient)(nil)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) ConnectWithSession(awsSessions *session.Session) {
	_ = m.Called(awsSessions)
}

func (m *MockClient) GetSession() *session.Session {
	args := m.Called()
	return args.Get(0).(*session.Session)
}

func (m *MockClient) Put(ctx context.Context, obj Object) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

// Ensure mockS3 implements s3iface.S3API
var _ s3iface.S3API = (*mockS3)(nil)

type mockS3 struct {
	s3iface.S3API
	mock.Mock
}

func (m *mockS3) PutObjectWithContext(ctx context.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.PutObjectOutput{}, args.Error(0)
}
