package domain

import (
	"errors"
	"strings"
	"time"

	jnow "github.com/jinzhu/now"
)

// ErrInvalidDate is returned when a date string matches none of the accepted layouts
var ErrInvalidDate = errors.New("invalid date")

// DateLayouts are the accepted date inputs. Layouts without a zone are read in
// the configured location; "2006-01-02T15:04" is what datetime-local inputs send.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime parses value using DateLayouts in loc
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	cfg := &jnow.Config{
		WeekStartDay: time.Monday,
		TimeLocation: location(loc),
		TimeFormats:  DateLayouts,
	}
	t, err := cfg.Parse(value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseOptionalDateTime treats an empty value as "no date"
func ParseOptionalDateTime(value string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDateTime(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
