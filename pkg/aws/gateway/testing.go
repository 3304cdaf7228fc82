package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigateway"
	"github.com/aws/aws-sdk-go/service/apigateway/apigatewayiface"
	"github.com/stretchr/testify/mock"
)

const (
	ConnectMethod            = "Connect"
	ConnectWithSessionMethod = "ConnectWithSession"
	GetSessionMethod         = "GetSession"
	PutSpecMethod            = "PutSpec"
	DeployMethod             = "Deploy"

	putRestApiMethod       = "PutRestApiWithContext"
	createDeploymentMethod = "CreateDeploymentWithContext"
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

func (m *MockClient) PutSpec(ctx context.Context, restApiId string, spec []byte, endpointType string) error {
	args := m.Called(ctx, restApiId, spec, endpointType)
	return args.Error(0)
}

func (m *MockClient) Deploy(ctx context.Context, restApiId string, stage string) error {
	args := m.Called(ctx, restApiId, stage)
	return args.Error(0)
}

// Ensure mockAPIGateway implements apigatewayiface.APIGatewayAPI
var _ apigatewayiface.APIGatewayAPI = (*mockAPIGateway)(nil)

type mockAPIGateway struct {
	apigatewayiface.APIGatewayAPI
	mock.Mock
}

func (m *mockAPIGateway) PutRestApiWithContext(ctx context.Context, in *apigateway.PutRestApiInput, _ ...request.Option) (*apigateway.RestApi, error) {
	args := m.Called(ctx, in)
	return &apigateway.RestApi{Id: in.RestApiId}, args.Error(0)
}

func (m *mockAPIGateway) CreateDeploymentWithContext(ctx context.Context, in *apigateway.CreateDeploymentInput, _ ...request.Option) (*apigateway.Deployment, error) {
	args := m.Called(ctx, in)
	return &apigateway.Deployment{}, args.Error(0)
}
