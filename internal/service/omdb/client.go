package omdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/kapu/movie-picker-go/internal/constants"
	"github.com/kapu/movie-picker-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// LookupResponse is the subset of an OMDb title response the picker reads.
type LookupResponse struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Found reports whether OMDb resolved the identifier. OMDb answers unknown
// identifiers and bad keys with HTTP 200 and Response "False".
func (r *LookupResponse) Found() bool {
	return !strings.EqualFold(r.Response, "False")
}

type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond int
}

// Client performs single-attempt requests against OMDb and the poster host.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.APIConfig.OMDbBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.APIConfig.OMDbTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = cfg.RequestsPerSecond
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}
}

// Lookup fetches the OMDb record for an IMDb identifier.
func (c *Client) Lookup(ctx context.Context, imdbID, apiKey string) (*LookupResponse, error) {
	reqURL, err := c.lookupURL(imdbID, apiKey)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, reqURL, 0)
	if err != nil {
		return nil, err
	}

	var resp LookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode omdb response: %w", err)
	}
	return &resp, nil
}

// FetchImage downloads the poster bytes at imageURL.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return c.get(ctx, imageURL, constants.PosterConfig.MaxImageBytes)
}

func (c *Client) lookupURL(imdbID, apiKey string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid omdb base url: %w", err)
	}
	params := base.Query()
	params.Set("apikey", apiKey)
	params.Set("i", imdbID)
	base.RawQuery = params.Encode()
	return base.String(), nil
}

// get issues one GET request. maxBytes of zero leaves the body unbounded.
func (c *Client) get(ctx context.Context, reqURL string, maxBytes int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok {
			urlErr.URL = redactKey(urlErr.URL)
		}
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if maxBytes > 0 {
		reader = io.LimitReader(resp.Body, maxBytes+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("OMDb request rejected",
			zap.String("host", req.URL.Host),
			zap.Int("status", resp.StatusCode),
		)
		return nil, errors.NewAPIError(fmt.Sprintf("Unexpected status: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"host": req.URL.Host,
		})
	}

	if maxBytes > 0 && int64(len(body)) > maxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxBytes)
	}

	return body, nil
}

// redactKey hides the apikey query parameter so errors can be logged.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	params := u.Query()
	if params.Get("apikey") == "" {
		return raw
	}
	params.Set("apikey", "REDACTED")
	u.RawQuery = params.Encode()
	return u.String()
}
