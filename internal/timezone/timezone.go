package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Bogota"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and finally UTC.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseLocal reads a YYYY-MM-DD date and an HH:MM clock time as wall time in tz.
func ParseLocal(date, clock, tz string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, Location(tz))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q %q: %w", date, clock, err)
	}
	return t, nil
}

// DayBounds returns [start, end) of the calendar day containing date in tz.
func DayBounds(date, tz string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
