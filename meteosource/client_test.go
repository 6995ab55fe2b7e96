package meteosource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient("test-key", TierFree)
	client.SetHost(server.URL)
	return client, server
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		tier     string
		endpoint string
		expected string
	}{
		{TierFree, EndpointPoint, "https://www.meteosource.com/api/v1/free/point"},
		{TierStartup, EndpointPoint, "https://www.meteosource.com/api/v1/startup/point"},
		{TierStandard, EndpointPoint, "https://www.meteosource.com/api/v1/standard/point"},
		{TierFlexi, EndpointTimeMachine, "https://www.meteosource.com/api/v1/flexi/time_machine"},
	}

	for _, tt := range tests {
		t.Run(tt.tier+"/"+tt.endpoint, func(t *testing.T) {
			c := NewClient("key", tt.tier)
			if url := c.buildURL(tt.endpoint); url != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, url)
			}
		})
	}
}

func TestPointRequestValidation(t *testing.T) {
	lat, lon := Float64Ptr(51.5), Float64Ptr(-0.12)

	tests := []struct {
		name string
		req  PointRequest
	}{
		{name: "nothing set", req: PointRequest{}},
		{name: "lat without lon", req: PointRequest{Lat: lat}},
		{name: "lon without lat", req: PointRequest{Lon: lon}},
		{name: "place_id with lat", req: PointRequest{PlaceID: "london", Lat: lat}},
		{name: "place_id with lon", req: PointRequest{PlaceID: "london", Lon: lon}},
		{name: "place_id with both", req: PointRequest{PlaceID: "london", Lat: lat, Lon: lon}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.req.params(); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestPointRequestDefaults(t *testing.T) {
	pars, err := (&PointRequest{PlaceID: "london"}).params()
	if err != nil {
		t.Fatalf("params returned error: %v", err)
	}
	expected := map[string]string{
		"place_id": "london",
		"sections": SectionsAll,
		"timezone": "UTC",
		"language": LangEnglish,
		"units":    UnitsMetric,
	}
	for k, v := range expected {
		if pars[k] != v {
			t.Errorf("Expected %s=%q, got %q", k, v, pars[k])
		}
	}
	if _, ok := pars["lat"]; ok {
		t.Error("Unexpected lat parameter for a place_id request")
	}
}

func TestPointRequestCoordinates(t *testing.T) {
	pars, err := (&PointRequest{Lat: Float64Ptr(50.0755), Lon: Float64Ptr(14.4378), Units: UnitsUS}).params()
	if err != nil {
		t.Fatalf("params returned error: %v", err)
	}
	if pars["lat"] != "50.0755" || pars["lon"] != "14.4378" {
		t.Errorf("Unexpected coordinates: lat=%q lon=%q", pars["lat"], pars["lon"])
	}
	if pars["units"] != UnitsUS {
		t.Errorf("Expected units us, got %q", pars["units"])
	}
}

func TestTimeMachineRequestDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := parseDay(s)
		if err != nil {
			t.Fatalf("Failed to parse day %q: %v", s, err)
		}
		return d
	}

	t.Run("single string date", func(t *testing.T) {
		days, err := (&TimeMachineRequest{Date: "2021-01-01"}).days()
		if err != nil {
			t.Fatalf("days returned error: %v", err)
		}
		if len(days) != 1 || !days[0].Equal(day("2021-01-01")) {
			t.Errorf("Unexpected days: %v", days)
		}
	})

	t.Run("single time date", func(t *testing.T) {
		// The time of day is discarded; only the calendar day matters.
		days, err := (&TimeMachineRequest{
			Date: time.Date(2021, 1, 1, 18, 30, 0, 0, time.UTC),
		}).days()
		if err != nil {
			t.Fatalf("days returned error: %v", err)
		}
		if len(days) != 1 || !days[0].Equal(day("2021-01-01")) {
			t.Errorf("Unexpected days: %v", days)
		}
	})

	t.Run("mixed date list", func(t *testing.T) {
		days, err := (&TimeMachineRequest{
			Date: []any{"2021-01-01", time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)},
		}).days()
		if err != nil {
			t.Fatalf("days returned error: %v", err)
		}
		if len(days) != 2 || !days[0].Equal(day("2021-01-01")) || !days[1].Equal(day("2021-03-15")) {
			t.Errorf("Unexpected days: %v", days)
		}
	})

	t.Run("string slice", func(t *testing.T) {
		days, err := (&TimeMachineRequest{
			Date: []string{"2021-01-02", "2021-01-01"},
		}).days()
		if err != nil {
			t.Fatalf("days returned error: %v", err)
		}
		// Request order is preserved, never sorted.
		if len(days) != 2 || !days[0].Equal(day("2021-01-02")) || !days[1].Equal(day("2021-01-01")) {
			t.Errorf("Unexpected days: %v", days)
		}
	})

	t.Run("inclusive range", func(t *testing.T) {
		days, err := (&TimeMachineRequest{
			DateFrom: "2019-05-05",
			DateTo:   "2019-05-09",
		}).days()
		if err != nil {
			t.Fatalf("days returned error: %v", err)
		}
		if len(days) != 5 {
			t.Fatalf("Expected 5 days, got %d", len(days))
		}
		if !days[0].Equal(day("2019-05-05")) || !days[4].Equal(day("2019-05-09")) {
			t.Errorf("Unexpected range bounds: %v .. %v", days[0], days[4])
		}
	})

	t.Run("missing specification", func(t *testing.T) {
		if _, err := (&TimeMachineRequest{}).days(); !errors.Is(err, ErrInvalidDateSpecification) {
			t.Errorf("Expected ErrInvalidDateSpecification, got %v", err)
		}
	})

	t.Run("date with range", func(t *testing.T) {
		req := &TimeMachineRequest{Date: "2021-01-01", DateFrom: "2021-01-01", DateTo: "2021-01-02"}
		if _, err := req.days(); !errors.Is(err, ErrInvalidDateSpecification) {
			t.Errorf("Expected ErrInvalidDateSpecification, got %v", err)
		}
	})

	t.Run("from without to", func(t *testing.T) {
		if _, err := (&TimeMachineRequest{DateFrom: "2021-01-01"}).days(); !errors.Is(err, ErrInvalidDateSpecification) {
			t.Errorf("Expected ErrInvalidDateSpecification, got %v", err)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		var formatErr *InvalidDateFormatError
		if _, err := (&TimeMachineRequest{Date: "01/01/2021"}).days(); !errors.As(err, &formatErr) {
			t.Errorf("Expected InvalidDateFormatError, got %v", err)
		}
	})

	t.Run("unsupported date type", func(t *testing.T) {
		var formatErr *InvalidDateFormatError
		if _, err := (&TimeMachineRequest{Date: 20210101}).days(); !errors.As(err, &formatErr) {
			t.Errorf("Expected InvalidDateFormatError, got %v", err)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		var rangeErr *InvalidDateRangeError
		req := &TimeMachineRequest{DateFrom: "2021-01-03", DateTo: "2021-01-01"}
		if _, err := req.days(); !errors.As(err, &rangeErr) {
			t.Errorf("Expected InvalidDateRangeError, got %v", err)
		}
	})

	t.Run("equal bounds", func(t *testing.T) {
		// Both bounds truncate to the same day, so from is not strictly
		// earlier than to.
		var rangeErr *InvalidDateRangeError
		req := &TimeMachineRequest{
			DateFrom: "2021-01-03",
			DateTo:   time.Date(2021, 1, 3, 23, 59, 0, 0, time.UTC),
		}
		if _, err := req.days(); !errors.As(err, &rangeErr) {
			t.Errorf("Expected InvalidDateRangeError, got %v", err)
		}
	})
}

func TestPointForecastRequest(t *testing.T) {
	fixture, err := os.ReadFile("testdata/point.json")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}

	var gotPath string
	var gotQuery map[string]string
	var gotKey string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	})

	f, err := client.PointForecast(context.Background(), PointRequest{
		PlaceID:  "london",
		Sections: SectionsCurrent,
		Lang:     LangCzech,
	})
	if err != nil {
		t.Fatalf("PointForecast returned error: %v", err)
	}

	if gotPath != "/v1/free/point" {
		t.Errorf("Expected path /v1/free/point, got %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("Expected X-API-Key test-key, got %q", gotKey)
	}
	expectedQuery := map[string]string{
		"place_id": "london",
		"sections": SectionsCurrent,
		"timezone": "UTC",
		"language": LangCzech,
		"units":    UnitsMetric,
	}
	for k, v := range expectedQuery {
		if gotQuery[k] != v {
			t.Errorf("Expected query %s=%q, got %q", k, v, gotQuery[k])
		}
	}

	if f.Lat != 51.50853 {
		t.Errorf("Expected lat 51.50853, got %v", f.Lat)
	}
	if temp, _ := f.Current.Number("temperature"); temp != 17.3 {
		t.Errorf("Expected current temperature 17.3, got %v", temp)
	}
}

func TestPointForecastDisplayTimezone(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	if err != nil {
		t.Fatalf("Failed to load timezone: %v", err)
	}
	fixture, err := os.ReadFile("testdata/point.json")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}

	var gotTimezone string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTimezone = r.URL.Query().Get("timezone")
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	})

	f, err := client.PointForecast(context.Background(), PointRequest{
		PlaceID:  "london",
		Timezone: "Europe/Prague",
	})
	if err != nil {
		t.Fatalf("PointForecast returned error: %v", err)
	}

	// The wire request always asks for UTC; the display timezone is applied
	// locally, never sent to the API.
	if gotTimezone != "UTC" {
		t.Errorf("Expected wire timezone UTC, got %q", gotTimezone)
	}
	if f.Timezone != "Europe/Prague" {
		t.Errorf("Expected timezone Europe/Prague, got %q", f.Timezone)
	}

	// The first hourly entry is 10:00 UTC, which is 12:00 CEST. A single
	// conversion must apply; converting an already-converted wall clock
	// would yield 14:00.
	snap, err := f.Hourly.At(0)
	if err != nil {
		t.Fatalf("At(0) returned error: %v", err)
	}
	date, _ := snap.Time("date")
	expected := time.Date(2021, 9, 8, 12, 0, 0, 0, prague)
	if !date.Equal(expected) {
		t.Errorf("Expected instant %v, got %v", expected, date)
	}
	if strs := f.Hourly.DateStrings(); strs[0] != "2021-09-08T12:00:00" {
		t.Errorf("Expected local wall-clock index 2021-09-08T12:00:00, got %q", strs[0])
	}
}

func TestPointForecastAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail": "Invalid API key"}`))
	})

	_, err := client.PointForecast(context.Background(), PointRequest{PlaceID: "london"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", apiErr.StatusCode)
	}
}

func TestPointForecastInvalidJSON(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	if _, err := client.PointForecast(context.Background(), PointRequest{PlaceID: "london"}); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func TestTimeMachineMultiDay(t *testing.T) {
	var requestedDates []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		requestedDates = append(requestedDates, date)
		payload := timeMachinePayload(date, 24)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	tm, err := client.TimeMachine(context.Background(), TimeMachineRequest{
		PlaceID:  "london",
		DateFrom: "2021-01-01",
		DateTo:   "2021-01-03",
	})
	if err != nil {
		t.Fatalf("TimeMachine returned error: %v", err)
	}

	expectedDates := []string{"2021-01-01", "2021-01-02", "2021-01-03"}
	if len(requestedDates) != len(expectedDates) {
		t.Fatalf("Expected %d calls, got %d", len(expectedDates), len(requestedDates))
	}
	for i, d := range expectedDates {
		if requestedDates[i] != d {
			t.Errorf("Expected call %d for %s, got %s", i, d, requestedDates[i])
		}
	}

	if tm.Data.Len() != 72 {
		t.Errorf("Expected 72 merged timesteps, got %d", tm.Data.Len())
	}
	if tm.Statistics.Len() != 3 {
		t.Errorf("Expected 3 statistics entries, got %d", tm.Statistics.Len())
	}
	first, err := tm.Data.At(0)
	if err != nil {
		t.Fatalf("At(0) returned error: %v", err)
	}
	date, _ := first.Time("date")
	if !date.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected first instant: %v", date)
	}
	last, err := tm.Data.At(71)
	if err != nil {
		t.Fatalf("At(71) returned error: %v", err)
	}
	date, _ = last.Time("date")
	if !date.Equal(time.Date(2021, 1, 3, 23, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected last instant: %v", date)
	}
}

func TestTimeMachineMidRangeFailure(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"detail": "rate limited"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(timeMachinePayload(r.URL.Query().Get("date"), 24))
	})

	tm, err := client.TimeMachine(context.Background(), TimeMachineRequest{
		PlaceID:  "london",
		DateFrom: "2021-01-01",
		DateTo:   "2021-01-03",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if tm != nil {
		t.Error("Expected no partial result on failure")
	}
	if calls != 2 {
		t.Errorf("Expected second call to abort the range, got %d calls", calls)
	}
}

func TestTimeMachineValidatesBeforeRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Unexpected HTTP request for an invalid specification")
	})

	if _, err := client.TimeMachine(context.Background(), TimeMachineRequest{PlaceID: "london"}); err == nil {
		t.Error("Expected error, got nil")
	}
	req := TimeMachineRequest{PlaceID: "london", Lat: Float64Ptr(51.5), Date: "2021-01-01"}
	if _, err := client.TimeMachine(context.Background(), req); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{51.5, "51.5"},
		{-0.12574, "-0.12574"},
		{14.0, "14"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatFloat(tt.input); got != tt.expected {
			t.Errorf("formatFloat(%v): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
