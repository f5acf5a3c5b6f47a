// Package geocode resolves coordinates to a short administrative place name
// via the Nominatim reverse-geocoding service. Results are best-effort: every
// failure mode degrades to "no result" rather than an error, because a
// missing place label only costs the caller a nicer query string.
package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	defaultEndpoint = "https://nominatim.openstreetmap.org/reverse"
	requestTimeout  = 5 * time.Second

	// Nominatim requires an identifying User-Agent.
	userAgent = "lunchscout/1.0"
)

// Client is a reverse-geocoding client.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a Client against the public Nominatim endpoint.
func New(logger zerolog.Logger) *Client {
	return &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With().Str("component", "geocode").Logger(),
	}
}

// SetEndpoint overrides the endpoint, for tests.
func (c *Client) SetEndpoint(endpoint string) {
	c.endpoint = endpoint
}

// nominatimResponse is the subset of the reverse response we read.
type nominatimResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Neighbourhood string `json:"neighbourhood"`
		Quarter       string `json:"quarter"`
		Suburb        string `json:"suburb"`
		CityDistrict  string `json:"city_district"`
		Borough       string `json:"borough"`
		City          string `json:"city"`
	} `json:"address"`
}

// Locate returns a short place name for the coordinates, preferring
// neighborhood over district over city, or "" when nothing resolves.
func (c *Client) Locate(ctx context.Context, lat, lon float64) string {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("accept-language", "ko")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("reverse geocode failed")
		return ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("reverse geocode non-200")
		return ""
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Debug().Err(err).Msg("reverse geocode decode failed")
		return ""
	}

	return pickName(body)
}

// pickName applies the dong > gu > city precedence, falling back to the
// first display-name segment.
func pickName(body nominatimResponse) string {
	addr := body.Address

	for _, candidate := range []string{addr.Neighbourhood, addr.Quarter, addr.Suburb} {
		if candidate != "" {
			return candidate
		}
	}
	for _, candidate := range []string{addr.CityDistrict, addr.Borough} {
		if candidate != "" {
			return candidate
		}
	}
	if addr.City != "" {
		return addr.City
	}

	if body.DisplayName != "" {
		return strings.TrimSpace(strings.SplitN(body.DisplayName, ",", 2)[0])
	}
	return ""
}
