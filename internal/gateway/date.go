package gateway

import (
	"fmt"
	"time"
)

// Date is a calendar date as the gateway serializes it ("2006-01-02").
// Transactions and episode air dates carry dates, not instants.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts the gateway wire format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Date{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}

	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Within reports whether d falls in the inclusive [start, end] range.
// A nil bound means no constraint from that side.
func (d Date) Within(start, end *Date) bool {
	if start != nil && d.Before(start.Time) {
		return false
	}

	if end != nil && d.After(end.Time) {
		return false
	}

	return true
}
