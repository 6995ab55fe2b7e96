package meteosource

import (
	"fmt"
	"strconv"
	"time"
)

// parseCoordinate parses the API's string encoding of a latitude or
// longitude, e.g. "51.50853N" or "0.12574W". The trailing hemisphere letter
// is stripped; N and E keep the sign, any other letter negates. The letter
// itself is not validated, matching the upstream contract.
func parseCoordinate(s string) (float64, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("malformed coordinate %q", s)
	}
	v, err := strconv.ParseFloat(s[:len(s)-1], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed coordinate %q: %w", s, err)
	}
	switch s[len(s)-1] {
	case 'N', 'E':
		return v, nil
	default:
		return -v, nil
	}
}

// locationMeta is the scalar metadata shared by both aggregates.
type locationMeta struct {
	Lat       float64
	Lon       float64
	Elevation int
	Timezone  string
	Units     string
}

func (m *locationMeta) load(data map[string]any) error {
	lat, ok := data["lat"].(string)
	if !ok {
		return fmt.Errorf("payload without lat field")
	}
	lon, ok := data["lon"].(string)
	if !ok {
		return fmt.Errorf("payload without lon field")
	}
	var err error
	if m.Lat, err = parseCoordinate(lat); err != nil {
		return err
	}
	if m.Lon, err = parseCoordinate(lon); err != nil {
		return err
	}
	if elevation, ok := data["elevation"].(float64); ok {
		m.Elevation = int(elevation)
	}
	m.Timezone, _ = data["timezone"].(string)
	m.Units, _ = data["units"].(string)
	return nil
}

// section extracts a named section mapping; absent sections come back nil
// and materialize as empty containers downstream.
func section(data map[string]any, name string) map[string]any {
	m, _ := data[name].(map[string]any)
	return m
}

// Forecast is the point-forecast aggregate: location metadata plus one
// container per section. Sections absent from the payload are present as
// empty containers, not nil.
type Forecast struct {
	locationMeta

	Current  *Snapshot
	Minutely *Timeseries
	Hourly   *Timeseries
	Daily    *Timeseries
	Alerts   *Alerts
}

// newForecast materializes one decoded point-forecast payload. The display
// timezone is supplied by the caller because the wire data is always
// requested in UTC; every instant is converted into it locally.
func newForecast(data map[string]any, tzName string) (*Forecast, error) {
	f := &Forecast{}
	if err := f.load(data); err != nil {
		return nil, err
	}
	f.Timezone = tzName
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}
	if f.Current, err = newSnapshot(section(data, "current"), loc); err != nil {
		return nil, err
	}
	if f.Minutely, err = newTimeseries(section(data, "minutely"), SectionMinutely, loc); err != nil {
		return nil, err
	}
	if f.Hourly, err = newTimeseries(section(data, "hourly"), SectionHourly, loc); err != nil {
		return nil, err
	}
	if f.Daily, err = newTimeseries(section(data, "daily"), SectionDaily, loc); err != nil {
		return nil, err
	}
	if f.Alerts, err = newAlerts(section(data, "alerts"), loc); err != nil {
		return nil, err
	}
	return f, nil
}

// Section returns a section or metadata field by name, mirroring keyed
// access on the aggregate.
func (f *Forecast) Section(name string) (any, error) {
	switch name {
	case "lat":
		return f.Lat, nil
	case "lon":
		return f.Lon, nil
	case "elevation":
		return f.Elevation, nil
	case "timezone":
		return f.Timezone, nil
	case "units":
		return f.Units, nil
	case "current":
		return f.Current, nil
	case "minutely":
		return f.Minutely, nil
	case "hourly":
		return f.Hourly, nil
	case "daily":
		return f.Daily, nil
	case "alerts":
		return f.Alerts, nil
	}
	return nil, fmt.Errorf("unknown section %q", name)
}

func (f *Forecast) String() string {
	return fmt.Sprintf("forecast for lat: %v, lon: %v", f.Lat, f.Lon)
}

// TimeMachine is the historical-data aggregate for one or more calendar
// days: hourly archive data plus long-term daily statistics.
type TimeMachine struct {
	locationMeta

	// Data holds the archive's hourly entries. Every entry carries a
	// derived weather category name and id looked up from its icon code.
	Data *Timeseries

	// Statistics holds long-term climatological figures, one entry per
	// requested day, keyed by a synthetic day field under UTC.
	Statistics *Timeseries
}

// newTimeMachine materializes one day's archive payload. The display
// timezone is supplied by the caller because the wire data itself is always
// in UTC. The statistics payload carries no date of its own, so day is
// injected as its temporal key.
func newTimeMachine(data map[string]any, day time.Time, tzName string) (*TimeMachine, error) {
	tm := &TimeMachine{}
	if err := tm.load(data); err != nil {
		return nil, err
	}
	tm.Timezone = tzName
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}

	if rows, ok := data["data"].([]any); ok {
		for _, row := range rows {
			m, ok := row.(map[string]any)
			if !ok {
				continue
			}
			wt := weatherTypeForIcon(m["icon"])
			m["weather"] = wt.Name
			m["weather_id"] = float64(wt.ID)
		}
	}
	hourly := map[string]any{"data": data["data"]}
	if tm.Data, err = newTimeseries(hourly, SectionTimeMachine, loc); err != nil {
		return nil, err
	}

	var statsPayload map[string]any
	if stats, ok := data["statistics"].(map[string]any); ok {
		stats["day"] = day.Format(DayFormat)
		statsPayload = map[string]any{"data": []any{stats}}
	}
	// Statistics are long-term figures, not instant-specific, and always
	// stay under UTC regardless of the display timezone.
	if tm.Statistics, err = newTimeseries(statsPayload, SectionStatistics, time.UTC); err != nil {
		return nil, err
	}
	return tm, nil
}

// Append stitches another day's archive result onto tm, concatenating both
// the hourly data and the statistics in call order. Overlapping requested
// ranges yield duplicate entries; nothing is de-duplicated or re-sorted.
func (tm *TimeMachine) Append(other *TimeMachine) error {
	if other == nil {
		return &InvalidClassTypeError{Got: nil, Want: "*TimeMachine"}
	}
	if err := tm.Data.Append(other.Data); err != nil {
		return err
	}
	return tm.Statistics.Append(other.Statistics)
}

// Section returns a section or metadata field by name.
func (tm *TimeMachine) Section(name string) (any, error) {
	switch name {
	case "lat":
		return tm.Lat, nil
	case "lon":
		return tm.Lon, nil
	case "elevation":
		return tm.Elevation, nil
	case "timezone":
		return tm.Timezone, nil
	case "units":
		return tm.Units, nil
	case "data":
		return tm.Data, nil
	case "statistics":
		return tm.Statistics, nil
	}
	return nil, fmt.Errorf("unknown section %q", name)
}

func (tm *TimeMachine) String() string {
	return fmt.Sprintf("time machine for lat: %v, lon: %v", tm.Lat, tm.Lon)
}
