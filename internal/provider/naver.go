package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// Environment variables for provider credentials.
const (
	EnvClientID     = "NAVER_CLIENT_ID"
	EnvClientSecret = "NAVER_CLIENT_SECRET"
)

const (
	defaultBaseURL = "https://openapi.naver.com/v1/search/local.json"
	requestTimeout = 10 * time.Second

	// In-process response cache: repeated identical sub-queries within an
	// aggregate call (and across close calls) skip the wire entirely.
	responseCacheSize = 1024
	responseCacheTTL  = time.Hour
)

// cachedResponse is one memoized provider response with its expiry.
type cachedResponse struct {
	items     []types.PlaceRecord
	expiresAt time.Time
}

// LocalSearchClient talks to the local-search REST endpoint. Credentials go
// in request headers; results arrive as an ordered item list whose titles may
// embed inline markup.
type LocalSearchClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
	cache        *lru.Cache[string, cachedResponse]
	cacheTTL     time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// NewLocalSearchClient creates a client with explicit credentials.
func NewLocalSearchClient(clientID, clientSecret string, logger zerolog.Logger) (*LocalSearchClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("provider: missing credentials: %w", types.ErrUnauthorized)
	}

	cache, err := lru.New[string, cachedResponse](responseCacheSize)
	if err != nil {
		return nil, fmt.Errorf("provider: create response cache: %w", err)
	}

	return &LocalSearchClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: requestTimeout},
		cache:        cache,
		cacheTTL:     responseCacheTTL,
		logger:       logger.With().Str("component", "provider").Logger(),
		now:          time.Now,
	}, nil
}

// NewFromEnv creates a client from NAVER_CLIENT_ID / NAVER_CLIENT_SECRET.
func NewFromEnv(logger zerolog.Logger) (*LocalSearchClient, error) {
	return NewLocalSearchClient(os.Getenv(EnvClientID), os.Getenv(EnvClientSecret), logger)
}

// SetBaseURL overrides the endpoint, for tests.
func (c *LocalSearchClient) SetBaseURL(u string) {
	c.baseURL = u
}

// Search issues one local-search call. Rate limiting (429) is retried with
// backoff; rejected credentials (401) surface immediately as
// types.ErrUnauthorized with no retry. Other non-200 statuses are errors the
// caller is expected to swallow as an empty contribution.
func (c *LocalSearchClient) Search(ctx context.Context, req SearchRequest) ([]types.PlaceRecord, error) {
	if req.Query == "" {
		return nil, types.ErrEmptyQuery
	}
	if req.Display <= 0 || req.Display > MaxDisplay {
		req.Display = MaxDisplay
	}
	if req.Start <= 0 {
		req.Start = 1
	}
	if req.Sort == "" {
		req.Sort = SortByComment
	}

	key := cacheKey(req)
	if entry, ok := c.cache.Get(key); ok && c.now().Before(entry.expiresAt) {
		return entry.items, nil
	}

	items, err := retryWithBackoff(ctx, DefaultRetryConfig(), func() ([]types.PlaceRecord, error) {
		return c.callAPI(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	c.cache.Add(key, cachedResponse{items: items, expiresAt: c.now().Add(c.cacheTTL)})
	return items, nil
}

func (c *LocalSearchClient) callAPI(ctx context.Context, req SearchRequest) ([]types.PlaceRecord, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("display", strconv.Itoa(req.Display))
	params.Set("start", strconv.Itoa(req.Start))
	params.Set("sort", string(req.Sort))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("X-Naver-Client-Id", c.clientID)
	httpReq.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Info().
		Str("query", req.Query).
		Int("display", req.Display).
		Str("sort", string(req.Sort)).
		Int("status", resp.StatusCode).
		Msg("local search request")

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, types.ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, types.ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(body))
	}

	var apiResp struct {
		Total   int                 `json:"total"`
		Start   int                 `json:"start"`
		Display int                 `json:"display"`
		Items   []types.PlaceRecord `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return apiResp.Items, nil
}

func cacheKey(req SearchRequest) string {
	return fmt.Sprintf("%s|%d|%d|%s", req.Query, req.Display, req.Start, req.Sort)
}
