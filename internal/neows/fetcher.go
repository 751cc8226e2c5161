package neows

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultFeedURL = "https://api.nasa.gov/neo/rest/v1/feed"
	DefaultAPIKey  = "DEMO_KEY"

	defaultTimeout = 30 * time.Second

	// Upper bound on error bodies copied into an UpstreamError.
	maxErrorBody = 512
)

type Option func(*Fetcher)

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.httpClient.Timeout = d
		}
	}
}

// Fetcher retrieves one feed document for a date range. The source is an
// http(s) endpoint or a file:// URL pointing at a saved response.
type Fetcher struct {
	source     *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFetcher(sourceURL string, apiKey string, opts ...Option) (*Fetcher, error) {
	if sourceURL == "" {
		sourceURL = DefaultFeedURL
	}
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}

	u, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https", "file":
	default:
		return nil, fmt.Errorf("unsupported feed protocol: %q", u.Scheme)
	}

	f := &Fetcher{
		source: u,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name identifies the source in logs and catalogs. It never contains the key.
func (f *Fetcher) Name() string {
	u := *f.source
	u.RawQuery = ""
	return u.String()
}

// RequestURL returns the request URL for r, including the API key.
func (f *Fetcher) RequestURL(r DateRange) string {
	u := *f.source
	q := u.Query()
	q.Set("start_date", r.From)
	q.Set("end_date", r.To)
	q.Set("api_key", f.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

// Fetch requests the feed for r. A non-200 response is returned as an
// *UpstreamError.
func (f *Fetcher) Fetch(ctx context.Context, r DateRange) (*Feed, error) {
	if f.source.Scheme == "file" {
		return f.fetchFile(r)
	}

	reqURL := f.RequestURL(r)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	f.logger.Info("fetching feed",
		zap.String("source", f.Name()),
		zap.String("start_date", r.From),
		zap.String("end_date", r.To),
	)

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", f.redact(err))
	}
	defer resp.Body.Close()

	f.logger.Debug("feed response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			URL:        f.Name(),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return Decode(resp.Body)
}

func (f *Fetcher) fetchFile(r DateRange) (*Feed, error) {
	path := f.source.Path
	if path == "" {
		// file:relative/path.json
		path = f.source.Opaque
	}

	f.logger.Info("reading feed from file",
		zap.String("path", path),
		zap.String("start_date", r.From),
		zap.String("end_date", r.To),
	)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// redact strips the API key from errors that quote the request URL.
func (f *Fetcher) redact(err error) error {
	if f.apiKey == "" || !strings.Contains(err.Error(), f.apiKey) {
		return err
	}
	return &redactedError{
		msg: strings.ReplaceAll(err.Error(), f.apiKey, "REDACTED"),
		err: err,
	}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
