package nobel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xhad/nobel/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxRedirects = 10

var (
	ErrTimeout          = errors.New("request timed out")
	ErrTooManyRedirects = errors.New("too many redirects")
	ErrRequest          = errors.New("request error")
	ErrDecode           = errors.New("invalid response body")
)

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received status code %d for URL: %s", e.StatusCode, e.URL)
}

type ClientConfig struct {
	BaseURL    string
	Version    string
	Category   string
	YearFrom   int
	YearTo     int
	Limit      int
	Timeout    time.Duration
	RateLimit  float64 // requests per second
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.nobelprize.org"
	}
	if config.Version == "" {
		config.Version = "2.1"
	}
	if config.Category == "" {
		config.Category = "phy"
	}
	if config.YearFrom == 0 {
		config.YearFrom = 2000
	}
	if config.YearTo == 0 {
		config.YearTo = 2023
	}
	if config.Limit == 0 {
		config.Limit = 5000
	}
	if config.Timeout == 0 {
		config.Timeout = 8 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	if _, err := url.ParseRequestURI(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}

	client := &http.Client{}
	if config.HTTPClient != nil {
		*client = *config.HTTPClient
	}
	client.Timeout = config.Timeout
	client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return ErrTooManyRedirects
		}
		return nil
	}

	return &Client{
		config:  config,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		logger:  config.Logger,
	}, nil
}

// LaureatesURL returns the laureates endpoint with the configured query.
func (c *Client) LaureatesURL() string {
	return c.pageURL(0)
}

func (c *Client) pageURL(offset int) string {
	params := []string{"limit=" + strconv.Itoa(c.config.Limit)}
	if offset > 0 {
		params = append(params, "offset="+strconv.Itoa(offset))
	}
	params = append(params,
		"nobelPrizeYear="+strconv.Itoa(c.config.YearFrom),
		"yearTo="+strconv.Itoa(c.config.YearTo),
		"format=json",
		"nobelPrizeCategory="+url.QueryEscape(c.config.Category),
	)
	base := strings.TrimRight(c.config.BaseURL, "/")
	return fmt.Sprintf("%s/%s/laureates?%s", base, c.config.Version, strings.Join(params, "&"))
}

type page struct {
	laureates []models.Laureate
	count     int
	missing   bool
}

// FetchLaureates downloads every laureate matching the configured category
// and year range, following meta.count across pages of Limit entries.
// Page requests are throttled by the rate limiter.
func (c *Client) FetchLaureates(ctx context.Context) ([]models.Laureate, error) {
	start := time.Now()
	laureates := []models.Laureate{}

	for offset, pages := 0, 0; ; pages++ {
		p, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if p.missing {
			c.logger.Warn("no 'laureates' in response data", zap.Int("offset", offset))
			break
		}

		laureates = append(laureates, p.laureates...)
		offset += len(p.laureates)

		if len(p.laureates) == 0 || offset >= p.count {
			break
		}
		c.logger.Debug("fetching next page",
			zap.Int("offset", offset),
			zap.Int("count", p.count),
			zap.Int("pages", pages+1))
	}

	c.logger.Debug("fetched laureates",
		zap.Int("count", len(laureates)),
		zap.Duration("elapsed", time.Since(start)))

	return laureates, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) (page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return page{}, classify(err)
	}

	urlStr := c.pageURL(offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return page{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching laureates", zap.String("url", urlStr))

	resp, err := c.client.Do(req)
	if err != nil {
		return page{}, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return page{}, &StatusError{StatusCode: resp.StatusCode, URL: urlStr}
	}

	var payload struct {
		Laureates json.RawMessage `json:"laureates"`
		Meta      struct {
			Count int `json:"count"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if cerr := classify(err); errors.Is(cerr, ErrTimeout) {
			return page{}, cerr
		}
		return page{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if len(payload.Laureates) == 0 {
		return page{missing: true}, nil
	}

	var laureates []models.Laureate
	if err := json.Unmarshal(payload.Laureates, &laureates); err != nil {
		return page{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return page{laureates: laureates, count: payload.Meta.Count}, nil
}

func classify(err error) error {
	if errors.Is(err, ErrTooManyRedirects) {
		return ErrTooManyRedirects
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrRequest, err)
}
