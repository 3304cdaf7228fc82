package specsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	// Specs larger than this are rejected rather than read into memory
	maxSpecSize = 10 << 20
)

var (
	Timeout = 3 * time.Second
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Client struct {
	httpClient *http.Client
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: Timeout},
	}
}

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build spec request")
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch spec from [%s]", url)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode < http.StatusOK || rsp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("unexpected status fetching spec from [%s]: %s", url, rsp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(rsp.Body, maxSpecSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read spec from [%s]", url)
	} else if len(body) > maxSpecSize {
		return nil, fmt.Errorf("spec from [%s] exceeds %d bytes", url, maxSpecSize)
	}
	return body, nil
}
