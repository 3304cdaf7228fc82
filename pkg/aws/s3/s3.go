package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

const (
	Delimiter = "/"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	ConnectWithSession(awsSession *session.Session)
	GetSession() *session.Session
	Put(ctx context.Context, obj Object) error
}

type Object struct {
	Bucket          string
	Key             string
	Body            io.ReadSeeker
	ContentType     string
	ContentEncoding string
}

type Client struct {
	cfg      *aws.Config
	s3Client s3iface.S3API
	session  *session.Session
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
	c.s3Client = s3.New(c.session, c.cfg)
}

func (c *Client) GetSession() *session.Session {
	return c.session
}

func (c *Client) Put(ctx context.Context, obj Object) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
		Body:   obj.Body,
	}
	if obj.ContentType != "" {
		in.ContentType = aws.String(obj.ContentType)
	}
	if obj.ContentEncoding != "" {
		in.ContentEncoding = aws.String(obj.ContentEncoding)
	}

	_, err := c.s3Client.PutObjectWithContext(ctx, in)
	return errors.Wrapf(err, "failed to put object [%s] in bucket [%s]", obj.Key, obj.Bucket)
}
