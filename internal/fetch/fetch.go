// Package fetch acquires raw feed content from local files and HTTP URLs.
package fetch

import (
	"context"
	"io"
	"net/http"

	"github.com/thoreinstein/rsscheck/internal/config"
	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/pkg/fileutil"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxSize caps the number of bytes read from one source.
func WithMaxSize(n int64) Option {
	return func(c *Client) {
		c.maxSize = n
	}
}

// Client reads feed files and fetches feed URLs.
type Client struct {
	httpClient HTTPClient
	userAgent  string
	maxSize    int64
}

// New creates a new Client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: NewHTTPClient(config.DefaultTimeout),
		userAgent:  config.DefaultUserAgent,
		maxSize:    config.DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadFile reads a local feed file as UTF-8 text. Errors are marked with
// errors.ErrRead.
func (c *Client) ReadFile(path string) (string, error) {
	raw, err := fileutil.ReadFileWithLimit(path, c.maxSize)
	if err != nil {
		return "", errors.Mark(err, errors.ErrRead)
	}
	text, err := DecodeUTF8(raw)
	if err != nil {
		return "", errors.Mark(err, errors.ErrRead)
	}
	return text, nil
}

// FetchURL GETs a feed and returns its body as UTF-8 text. Network failures
// and non-2xx statuses are marked with errors.ErrFetch.
func (c *Client) FetchURL(ctx context.Context, url string) (string, error) {
	raw, err := c.get(ctx, url)
	if err != nil {
		return "", errors.Mark(err, errors.ErrFetch)
	}
	text, err := DecodeUTF8(raw)
	if err != nil {
		return "", errors.Mark(err, errors.ErrFetch)
	}
	return text, nil
}

// Probe reports whether a GET of url answers 200 OK. It never returns an
// error: every failure simply means the candidate is not there.
func (c *Client) Probe(ctx context.Context, url string) bool {
	resp, err := c.do(ctx, url)
	if err != nil {
		logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "probe failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxSize))

	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "probe", "url", url, "status", resp.StatusCode)
	return resp.StatusCode == http.StatusOK
}

// GetPage GETs url and returns the raw body, for HTML autodiscovery.
func (c *Client) GetPage(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := fileutil.ReadAllWithLimit(resp.Body, c.maxSize)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	logging.FromContext(ctx).Debug("fetched", "url", url, "status", resp.StatusCode, "bytes", len(body))
	return body, nil
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
