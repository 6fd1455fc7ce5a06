package almanac

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/time/rate"
)

// Source yields the page structures the extraction engine consumes.
type Source interface {
	// Leagues returns every league on the year menu with its seasons.
	Leagues(ctx context.Context) (map[string][]Season, error)

	// SeasonTables fetches one season page and returns its tables.
	SeasonTables(ctx context.Context, url string) ([]Table, error)
}

// ClientOptions configures the HTTP source.
type ClientOptions struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	// Delay is the courtesy pause between page fetches. Tuning or removing
	// it changes politeness, not results.
	Delay time.Duration
}

// Client fetches almanac pages over HTTP with retry and pacing.
type Client struct {
	http    *http.Client
	opts    ClientOptions
	limiter *rate.Limiter
}

// NewClient creates a paced HTTP source.
func NewClient(opts ClientOptions) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "baseball-scrapping/1.0"
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Delay > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.Delay), 1)
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: limiter,
	}
}

// Leagues implements Source.
func (c *Client) Leagues(ctx context.Context) (map[string][]Season, error) {
	body, err := c.get(ctx, c.opts.BaseURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseYearMenu(body)
}

// SeasonTables implements Source. Menu hrefs are relative; they are
// resolved against the base URL before fetching.
func (c *Client) SeasonTables(ctx context.Context, rawURL string) ([]Table, error) {
	resolved, err := c.resolve(rawURL)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, resolved)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseSeasonPage(body)
}

func (c *Client) resolve(rawURL string) (string, error) {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "almanac: parse url %s", rawURL)
	}
	if ref.IsAbs() {
		return rawURL, nil
	}
	base, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", eris.Wrapf(err, "almanac: parse base url %s", c.opts.BaseURL)
	}
	return base.ResolveReference(ref).String(), nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "almanac: rate wait")
	}

	var lastErr error
	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			zap.L().Warn("almanac: retrying fetch",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, eris.Wrap(ctx.Err(), "almanac: fetch cancelled")
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrapf(err, "almanac: build request %s", url)
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = eris.Errorf("almanac: fetch %s: status %d", url, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			continue
		}
		return decodeBody(resp), nil
	}
	return nil, eris.Wrapf(lastErr, "almanac: fetch %s after %d attempts", url, c.opts.MaxRetries)
}

// decodeBody converts a non-UTF-8 response body to UTF-8 using the charset
// declared in the Content-Type header. Mojibake baked into the source text
// itself is left for the clean pass.
func decodeBody(resp *http.Response) io.ReadCloser {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.Body
	}
	charset := strings.ToLower(params["charset"])
	if charset == "" || charset == "utf-8" {
		return resp.Body
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		zap.L().Debug("almanac: unknown charset, reading raw", zap.String("charset", charset))
		return resp.Body
	}
	return struct {
		io.Reader
		io.Closer
	}{enc.NewDecoder().Reader(resp.Body), resp.Body}
}
