package account

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
	"github.com/pkg/errors"
)

const (
	StageStaging    = "staging"
	StageProduction = "production"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	GetStage(ctx context.Context) (string, error)
}

type Client struct {
	cfg       *aws.Config
	iamClient iamiface.IAMAPI
	session   *session.Session
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
	c.iamClient = iam.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

// GetStage derives the deployment stage from the first account alias.
func (c *Client) GetStage(ctx context.Context) (string, error) {
	out, err := c.iamClient.ListAccountAliasesWithContext(ctx, &iam.ListAccountAliasesInput{})
	if err != nil {
		return "", errors.Wrap(err, "failed to list account aliases")
	} else if len(out.AccountAliases) == 0 {
		return "", errors.New("account has no aliases")
	}

	if strings.Contains(aws.StringValue(out.AccountAliases[0]), StageStaging) {
		return StageStaging, nil
	}
	return StageProduction, nil
}
