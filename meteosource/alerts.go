package meteosource

import (
	"fmt"
	"time"
)

// Alerts holds the active-weather alerts of a point forecast. Each alert
// carries an onset and an expiry instant, both normalized to the target
// timezone. Alerts support integer indexing and iteration only; there is no
// secondary index, and queries scan linearly.
type Alerts struct {
	loc  *time.Location
	data []*Snapshot
}

// newAlerts materializes the alerts section. A nil payload yields an empty
// container.
func newAlerts(payload map[string]any, loc *time.Location) (*Alerts, error) {
	a := &Alerts{loc: loc}
	if payload == nil {
		return a, nil
	}
	rows, _ := payload["data"].([]any)
	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("malformed alert entry of type %T", row)
		}
		snap, err := newSnapshot(m, loc)
		if err != nil {
			return nil, err
		}
		a.data = append(a.data, snap)
	}
	return a, nil
}

// Len returns the number of alerts.
func (a *Alerts) Len() int { return len(a.data) }

// At returns the i-th alert.
func (a *Alerts) At(i int) (*Snapshot, error) {
	if len(a.data) == 0 {
		return nil, ErrEmptyInstance
	}
	if i < 0 || i >= len(a.data) {
		return nil, &IndexOutOfRangeError{Index: i, Length: len(a.data)}
	}
	return a.data[i], nil
}

// Get supports integer indexing only; any other index type fails with
// InvalidAlertIndexError.
func (a *Alerts) Get(index any) (*Snapshot, error) {
	if len(a.data) == 0 {
		return nil, ErrEmptyInstance
	}
	i, ok := index.(int)
	if !ok {
		return nil, &InvalidAlertIndexError{Index: index}
	}
	return a.At(i)
}

// All returns the alerts in original order, for iteration.
func (a *Alerts) All() []*Snapshot {
	return append([]*Snapshot(nil), a.data...)
}

// ActiveAlerts returns, in original order, every alert whose activity
// window contains the reference time, inclusive on both ends. The reference
// may be nil (now in the container's timezone), a wire-format instant
// string, or a time.Time (compared as an absolute instant). Any other type
// fails with InvalidClassTypeError.
func (a *Alerts) ActiveAlerts(ref any) ([]*Snapshot, error) {
	var t time.Time
	switch r := ref.(type) {
	case nil:
		t = time.Now().In(a.loc)
	case string:
		var err error
		t, err = parseInstant(r, a.loc)
		if err != nil {
			return nil, &InvalidDateFormatError{Value: r, Format: TimeFormat}
		}
	case time.Time:
		t = r.In(a.loc)
	default:
		return nil, &InvalidClassTypeError{Got: fmt.Sprintf("%T", ref), Want: "nil, string or time.Time"}
	}

	var active []*Snapshot
	for _, alert := range a.data {
		onset, ok := alert.Time("onset")
		if !ok {
			continue
		}
		expires, ok := alert.Time("expires")
		if !ok {
			continue
		}
		if !t.Before(onset) && !t.After(expires) {
			active = append(active, alert)
		}
	}
	return active, nil
}
