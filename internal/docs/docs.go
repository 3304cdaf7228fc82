package docs

import (
	"bytes"
	"compress/gzip"
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"deploy-notifier/internal/config"
	"deploy-notifier/pkg/aws/s3"
)

const (
	loggerName = "docs"

	specFileName    = "openapi.json"
	contentType     = "application/json"
	contentEncoding = "gzip"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Publish(ctx context.Context, app string, spec []byte) error
}

type Client struct {
	cfg    *config.Config
	logger *zap.Logger

	s3Client s3.ClientIFace
}

func New(cfg *config.Config, s3Client s3.ClientIFace) *Client {
	return &Client{
		cfg:      cfg,
		logger:   cfg.Logger.Named(loggerName),
		s3Client: s3Client,
	}
}

// Publish uploads the gzipped spec to the docs bucket under the app's folder.
func (c *Client) Publish(ctx context.Context, app string, spec []byte) error {
	body, err := compress(spec)
	if err != nil {
		return err
	}

	key := Key(c.cfg.Docs.Prefix, app)
	c.logger.Info(
		"publishing docs",
		zap.String("bucket", c.cfg.Docs.Bucket),
		zap.String("key", key),
		zap.Int("size", len(spec)),
	)

	return c.s3Client.Put(ctx, s3.Object{
		Bucket:          c.cfg.Docs.Bucket,
		Key:             key,
		Body:            bytes.NewReader(body),
		ContentType:     contentType,
		ContentEncoding: contentEncoding,
	})
}

// Key builds the object key for an app's spec. Empty segments are dropped so
// an empty prefix puts the app folder at the bucket root.
func Key(prefix, app string) string {
	var parts []string
	for _, part := range []string{prefix, strings.ToLower(app), specFileName} {
		if part = strings.Trim(part, s3.Delimiter); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, s3.Delimiter)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(err, "failed to gzip spec")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to gzip spec")
	}
	return buf.Bytes(), nil
}
