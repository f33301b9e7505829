package types

import (
	"strings"
	"time"

	ierr "github.com/facturio/facturio/internal/errors"
)

// DateFormat is the wire format for calendar dates
const DateFormat = "2006-01-02"

// Date is a calendar date without a time component. It serializes as an ISO
// calendar date (2006-01-02) on the wire and in storage, unlike timestamps
// which carry full RFC 3339 precision.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses an ISO calendar date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, ierr.WithError(err).
			WithHintf("Date invalide: %s", s).
			Mark(ierr.ErrValidation)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		// tolerate full timestamps from older payloads
		t, terr := time.Parse(time.RFC3339, s)
		if terr != nil {
			return err
		}
		parsed = NewDate(t)
	}
	*d = parsed
	return nil
}
