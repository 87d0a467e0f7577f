package hafas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/rs/zerolog/log"
)

const DefaultEndpoint = "https://v6.db.transport.rest"

type Client struct {
	Endpoint   string
	UserAgent  string
	HTTPClient *http.Client

	// Cache holds responses of the lookups that do not carry realtime data
	Cache *cache.Cache[string]

	MaxRetries uint64
	BackOff    func() backoff.BackOff
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		Endpoint:   endpoint,
		UserAgent:  "zug",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		MaxRetries: 3,
		BackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
}

// Journeys lists itineraries between two locations leaving at departure
func (c *Client) Journeys(ctx context.Context, from *Location, to *Location, departure time.Time, options JourneysOptions) ([]*Journey, error) {
	values := url.Values{}
	addLocationParameters(values, "from", from)
	addLocationParameters(values, "to", to)
	values.Set("departure", departure.Format(time.RFC3339))
	options.apply(values)

	body, err := c.get(ctx, "/journeys", values, false)
	if err != nil {
		return nil, err
	}

	var response journeysResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding journeys: %w", err)
	}

	if len(response.Journeys) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusNotFound,
			Type:       ErrorTypeNoConnections,
			Message:    "no connections found",
		}
	}

	for _, journey := range response.Journeys {
		if journey != nil && journey.RealtimeDataUpdatedAt == 0 {
			journey.RealtimeDataUpdatedAt = response.RealtimeDataUpdatedAt
		}
	}

	return response.Journeys, nil
}

// RefreshJourney fetches up to date realtime data for a previously returned journey
func (c *Client) RefreshJourney(ctx context.Context, refreshToken string) (*Journey, error) {
	values := url.Values{}
	values.Set("stopovers", "true")
	values.Set("polylines", "true")

	body, err := c.get(ctx, "/journeys/"+url.PathEscape(refreshToken), values, false)
	if err != nil {
		return nil, err
	}

	var response refreshResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decoding refreshed journey: %w", err)
	}
	if response.Journey == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Type: ErrorTypeNotFound, Message: "journey missing from response"}
	}

	if response.Journey.RealtimeDataUpdatedAt == 0 {
		response.Journey.RealtimeDataUpdatedAt = response.RealtimeDataUpdatedAt
	}

	return response.Journey, nil
}

// Locations searches stations, addresses and points of interest by name
func (c *Client) Locations(ctx context.Context, query string, results int) ([]*Location, error) {
	values := url.Values{}
	values.Set("query", query)
	values.Set("results", strconv.Itoa(results))

	body, err := c.get(ctx, "/locations", values, true)
	if err != nil {
		return nil, err
	}

	var locations []*Location
	if err := json.Unmarshal(body, &locations); err != nil {
		return nil, fmt.Errorf("decoding locations: %w", err)
	}

	return locations, nil
}

// Stop looks up a single station or stop by its identifier
func (c *Client) Stop(ctx context.Context, id string) (*Location, error) {
	body, err := c.get(ctx, "/stops/"+url.PathEscape(id), url.Values{}, true)
	if err != nil {
		return nil, err
	}

	var stop *Location
	if err := json.Unmarshal(body, &stop); err != nil {
		return nil, fmt.Errorf("decoding stop: %w", err)
	}

	return stop, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, cacheable bool) ([]byte, error) {
	requestURL := c.Endpoint + path
	if encoded := values.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	if cacheable && c.Cache != nil {
		if cached, err := c.Cache.Get(ctx, requestURL); err == nil {
			log.Debug().Str("url", requestURL).Msg("Backend response served from cache")
			return []byte(cached), nil
		}
	}

	var body []byte
	operation := func() error {
		var err error
		body, err = c.do(ctx, requestURL)
		if err == nil {
			return nil
		}

		var apiError *APIError
		if errors.As(err, &apiError) && !apiError.Retryable() {
			return backoff.Permanent(err)
		}

		log.Debug().Err(err).Str("url", requestURL).Msg("Retrying backend request")
		return err
	}

	retryBackOff := backoff.WithContext(backoff.WithMaxRetries(c.BackOff(), c.MaxRetries), ctx)
	if err := backoff.Retry(operation, retryBackOff); err != nil {
		return nil, err
	}

	if cacheable && c.Cache != nil {
		if err := c.Cache.Set(ctx, requestURL, string(body)); err != nil {
			log.Error().Err(err).Str("url", requestURL).Msg("Failed to cache backend response")
		}
	}

	return body, nil
}

func (c *Client) do(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func addLocationParameters(values url.Values, prefix string, location *Location) {
	if location == nil {
		return
	}

	if location.IsStation() {
		values.Set(prefix, location.ID)
		return
	}

	if location.Poi {
		values.Set(prefix+".id", location.ID)
		values.Set(prefix+".name", location.Name)
	} else {
		values.Set(prefix+".address", location.Address)
	}
	values.Set(prefix+".latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	values.Set(prefix+".longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
}
