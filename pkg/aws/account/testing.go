package account

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod            = "Connect"
	ConnectWithSessionMethod = "ConnectWithSession"
	GetSessionMethod         = "GetSession"
	GetStageMethod           = "GetStage"

	listAccountAliasesMethod = "ListAccountAliasesWithContext"
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

func (m *MockClient) ConnectWithSession(awsSession *session.Session) {
	_ = m.Called(awsSession)
}

func (m *MockClient) GetSession() *session.Session {
	args := m.Called()
	return args.Get(0).(*session.Session)
}

func (m *MockClient) GetStage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Ensure mockIAM implements the subset of iamiface.IAMAPI used by Client
var _ iamiface.IAMAPI = (*mockIAM)(nil)

type mockIAM struct {
	iamiface.IAMAPI
	mock.Mock
}

func (m *mockIAM) ListAccountAliasesWithContext(ctx context.Context, in *iam.ListAccountAliasesInput, _ ...request.Option) (*iam.ListAccountAliasesOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*iam.ListAccountAliasesOutput), args.Error(1)
	}
	return nil, args.Error(1)
}
