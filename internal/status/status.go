package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrUnavailable reports that the status source could not produce a usable
// record list. Well-behaved handlers answer it with a spoken "service
// unavailable" reply instead of propagating it.
var ErrUnavailable = errors.New("status service unavailable")

// Record is one line-status entry. Records arrive as a positionally ordered
// JSON array; what line index i refers to is defined by the consumer's line
// table, not by the record itself.
type Record struct {
	Status string `json:"status"`
}

type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// Client fetches the line-status feed with a single GET, no retries.
type Client struct {
	http    *resty.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http:    resty.New().SetRetryCount(0),
		baseURL: baseURL,
	}
}

func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	var records []Record

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&records).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status())
	}

	if records == nil {
		return nil, fmt.Errorf("%w: response is not a status array", ErrUnavailable)
	}

	return records, nil
}
