// Package http provides an HTTP-based implementation of metro.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/metro"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the tool to the page host. Wikipedia rejects
// requests without a descriptive user agent.
const DefaultUserAgent = "metro/1.0 (+https://github.com/fwojciec/metro)"

// Ensure Fetcher implements metro.Fetcher at compile time.
var _ metro.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	delays    []time.Duration
	logf      LogFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRetryDelays sets the delays between attempts. A failed fetch is
// retried once per delay. Defaults to DefaultRetryDelays.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRetryLog sets a function called before each retry.
func WithRetryLog(fn LogFunc) Option {
	return func(f *Fetcher) {
		f.logf = fn
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		delays:    DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, retrying failed
// attempts. Returns EFETCH if every attempt fails.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := FetchWithRetryDelays(ctx, url, f.fetch, f.logf, f.delays)
	if err != nil {
		if code := metro.ErrorCode(err); code == metro.EFETCH {
			return "", err
		}
		return "", metro.Errorf(metro.EFETCH, "fetch %s: %v", url, err)
	}
	return html, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", metro.Errorf(metro.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
