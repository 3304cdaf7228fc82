package gateway

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigateway"
	"github.com/aws/aws-sdk-go/service/apigateway/apigatewayiface"
	"github.com/pkg/errors"
)

const (
	PutModeOverwrite = "overwrite"

	EndpointTypeRegional = "REGIONAL"
	EndpointTypeEdge     = "EDGE"
	EndpointTypePrivate  = "PRIVATE"

	endpointTypesParam = "endpointConfigurationTypes"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	PutSpec(ctx context.Context, restApiId string, spec []byte, endpointType string) error
	Deploy(ctx context.Context, restApiId string, stage string) error
}

type Client struct {
	cfg           *aws.Config
	gatewayClient apigatewayiface.APIGatewayAPI
	session       *session.Session
}

func New() *Client {
	cfg := aws.NewConfig()
	return &Client{
		cfg: cfg,
	}
}

func (c *Client) Connect() error {
	awsSession, err := session.NewSession(c.cfg)
	if err != nil {
		return errors.Wrap(err, "failed to create aws session")
	}
	c.ConnectWithSession(awsSession)
	return nil
}

func (c *Client) ConnectWithSession(awsSession *session.Session) {
	c.session = awsSession
	c.gatewayClient = apigateway.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

// PutSpec replaces the whole REST API definition with the given
// specification.
func (c *Client) PutSpec(ctx context.Context, restApiId string, spec []byte, endpointType string) error {
	in := &apigateway.PutRestApiInput{
		RestApiId:      aws.String(restApiId),
		Mode:           aws.String(PutModeOverwrite),
		FailOnWarnings: aws.Bool(false),
		Body:           spec,
	}
	if endpointType != "" {
		in.Parameters = map[string]*string{
			endpointTypesParam: aws.String(endpointType),
		}
	}

	_, err := c.gatewayClient.PutRestApiWithContext(ctx, in)
	return errors.Wrapf(err, "failed to put specification to rest api [%s]", restApiId)
}

func (c *Client) Deploy(ctx context.Context, restApiId string, stage string) error {
	in := &apigateway.CreateDeploymentInput{
		RestApiId: aws.String(restApiId),
		StageName: aws.String(stage),
	}

	_, err := c.gatewayClient.CreateDeploymentWithContext(ctx, in)
	return errors.Wrapf(err, "failed to deploy rest api [%s] to stage [%s]", restApiId, stage)
}
