package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/squadmaker/internal/domain/model"
)

const defaultRESTTimeout = 10 * time.Second

// REST fetches players with a GET request on every call.
type REST struct {
	url    string
	client *http.Client
}

// RESTOption configures a REST source.
type RESTOption func(*REST)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(r *REST) {
		if c != nil {
			r.client = c
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) RESTOption {
	return func(r *REST) {
		if d > 0 {
			r.client = &http.Client{Timeout: d, Transport: r.client.Transport}
		}
	}
}

// NewREST returns a source reading url.
func NewREST(url string, opts ...RESTOption) *REST {
	r := &REST{
		url:    url,
		client: &http.Client{Timeout: defaultRESTTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name implements Source.
func (r *REST) Name() string { return KindREST }

// Players implements Source. Any non-2xx status is a failure.
func (r *REST) Players(ctx context.Context) ([]*model.Player, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %s", ErrSourceUnavailable, r.url, resp.Status)
	}
	return ParsePlayers(resp.Body)
}
