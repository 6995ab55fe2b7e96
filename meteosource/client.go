package meteosource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultHost is the production Meteosource API host.
const DefaultHost = "https://www.meteosource.com/api"

// Client is a client for the Meteosource weather API. The underlying HTTP
// session is created once and carries the API key header on every request.
// Requests are never retried; a failed call surfaces directly.
type Client struct {
	http *resty.Client
	host string
	tier string
}

// NewClient creates a client for the given API key and subscription tier.
func NewClient(apiKey, tier string) *Client {
	httpClient := resty.New()
	httpClient.SetTimeout(30 * time.Second)
	httpClient.SetHeader("X-API-Key", apiKey)
	httpClient.SetHeader("Accept", "application/json")
	return &Client{
		http: httpClient,
		host: DefaultHost,
		tier: tier,
	}
}

// NewClientWithHTTPClient creates a client that sends requests through a
// caller-supplied resty client. The API key header is added to its session.
func NewClientWithHTTPClient(httpClient *resty.Client, apiKey, tier string) *Client {
	httpClient.SetHeader("X-API-Key", apiKey)
	return &Client{
		http: httpClient,
		host: DefaultHost,
		tier: tier,
	}
}

// SetHost overrides the API host (useful for testing).
func (c *Client) SetHost(host string) {
	c.host = host
}

// buildURL constructs the endpoint URL without query parameters.
func (c *Client) buildURL(endpoint string) string {
	return fmt.Sprintf("%s/v1/%s/%s", c.host, c.tier, endpoint)
}

// PointRequest describes one point-forecast request. Exactly one of PlaceID
// or the Lat+Lon pair must be set.
type PointRequest struct {
	PlaceID string
	Lat     *float64
	Lon     *float64

	// Sections, Timezone, Lang and Units default to SectionsAll, "UTC",
	// LangEnglish and UnitsMetric when empty. The timezone only affects how
	// the returned instants are expressed; the wire data is always fetched
	// in UTC and converted locally.
	Sections string
	Timezone string
	Lang     string
	Units    string
}

func (r *PointRequest) params() (map[string]string, error) {
	pars := map[string]string{
		"sections": defaultString(r.Sections, SectionsAll),
		"timezone": "UTC",
		"language": defaultString(r.Lang, LangEnglish),
		"units":    defaultString(r.Units, UnitsMetric),
	}
	if err := locationParams(pars, r.PlaceID, r.Lat, r.Lon); err != nil {
		return nil, err
	}
	return pars, nil
}

// locationParams adds the place identifier or the coordinate pair to pars.
// Ambiguous or incomplete specifications fail with ErrInvalidArgument.
func locationParams(pars map[string]string, placeID string, lat, lon *float64) error {
	if placeID == "" {
		if lat == nil || lon == nil {
			return ErrInvalidArgument
		}
		pars["lat"] = formatFloat(*lat)
		pars["lon"] = formatFloat(*lon)
		return nil
	}
	if lat != nil || lon != nil {
		return ErrInvalidArgument
	}
	pars["place_id"] = placeID
	return nil
}

// PointForecast retrieves the forecast for a single point and materializes
// it into a Forecast aggregate.
func (c *Client) PointForecast(ctx context.Context, req PointRequest) (*Forecast, error) {
	pars, err := req.params()
	if err != nil {
		return nil, err
	}
	data, err := c.get(ctx, EndpointPoint, pars)
	if err != nil {
		return nil, err
	}
	return newForecast(data, defaultString(req.Timezone, "UTC"))
}

// TimeMachineRequest describes a historical-data request. Specify either
// Date (a single DayFormat string or time.Time, or a slice of them) or the
// DateFrom/DateTo pair describing an inclusive day range.
type TimeMachineRequest struct {
	PlaceID string
	Lat     *float64
	Lon     *float64

	Date     any
	DateFrom any
	DateTo   any

	// Timezone and Units default to "UTC" and UnitsMetric when empty. The
	// timezone only affects how the returned instants are expressed; the
	// endpoint itself always serves UTC data.
	Timezone string
	Units    string
}

// days expands the date specification into the list of calendar days to
// fetch, one HTTP call per day.
func (r *TimeMachineRequest) days() ([]time.Time, error) {
	switch {
	case r.Date != nil && r.DateFrom == nil && r.DateTo == nil:
		values := dateValues(r.Date)
		if len(values) == 0 {
			return nil, ErrInvalidDateSpecification
		}
		days := make([]time.Time, 0, len(values))
		for _, v := range values {
			day, err := toDay(v)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		return days, nil

	case r.Date == nil && r.DateFrom != nil && r.DateTo != nil:
		from, err := toDay(r.DateFrom)
		if err != nil {
			return nil, err
		}
		to, err := toDay(r.DateTo)
		if err != nil {
			return nil, err
		}
		if !from.Before(to) {
			return nil, &InvalidDateRangeError{From: from, To: to}
		}
		var days []time.Time
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			days = append(days, d)
		}
		return days, nil

	default:
		return nil, ErrInvalidDateSpecification
	}
}

// dateValues normalizes the Date field into a flat list of raw day values.
func dateValues(v any) []any {
	switch values := v.(type) {
	case []any:
		return values
	case []string:
		out := make([]any, len(values))
		for i, s := range values {
			out[i] = s
		}
		return out
	case []time.Time:
		out := make([]any, len(values))
		for i, t := range values {
			out[i] = t
		}
		return out
	default:
		return []any{v}
	}
}

// TimeMachine retrieves historical data. The endpoint serves one calendar
// day per call, so a multi-day request issues one sequential call per day
// and merges the per-day aggregates via Append, in request order. A failure
// partway through aborts the whole operation with no partial result.
func (c *Client) TimeMachine(ctx context.Context, req TimeMachineRequest) (*TimeMachine, error) {
	days, err := req.days()
	if err != nil {
		return nil, err
	}
	pars := map[string]string{
		"units": defaultString(req.Units, UnitsMetric),
	}
	if err := locationParams(pars, req.PlaceID, req.Lat, req.Lon); err != nil {
		return nil, err
	}
	tz := defaultString(req.Timezone, "UTC")

	var result *TimeMachine
	for _, day := range days {
		pars["date"] = day.Format(DayFormat)
		data, err := c.get(ctx, EndpointTimeMachine, pars)
		if err != nil {
			return nil, err
		}
		tm, err := newTimeMachine(data, day, tz)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = tm
			continue
		}
		if err := result.Append(tm); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// get executes one API call and decodes the JSON payload.
func (c *Client) get(ctx context.Context, endpoint string, pars map[string]string) (map[string]any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(pars).
		Get(c.buildURL(endpoint))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    string(resp.Body()),
		}
	}
	var data map[string]any
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return data, nil
}
