package timezone

import (
	"strings"
	"time"
)

// DefaultName is the business location used when none is configured.
const DefaultName = "Europe/Madrid"

var (
	CET *time.Location // UTC+1 - peninsular Spain, fallback when tzdata is missing
	WET *time.Location // UTC+0 - Canary Islands
)

func init() {
	CET = time.FixedZone("CET", 1*60*60)
	WET = time.FixedZone("WET", 0)
}

// GetLocationByName resolves a zone name. Unknown names fall back to CET.
func GetLocationByName(name string) *time.Location {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CET", "UTC+1":
		return CET
	case "WET", "UTC+0":
		return WET
	case "UTC":
		return time.UTC
	case "":
		name = DefaultName
	}
	if loc, err := time.LoadLocation(strings.TrimSpace(name)); err == nil {
		return loc
	}
	return CET
}

// ParseDate parses a date as typed in a form and returns midnight of that
// calendar day in loc. Time-of-day components, when present, are dropped.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if loc == nil {
		loc = CET
	}

	withZone := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700",
	}
	for _, format := range withZone {
		if t, err := time.Parse(format, raw); err == nil {
			return StartOfDay(t, loc), nil
		}
	}

	local := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"02/01/2006",
		"02-01-2006",
	}
	for _, format := range local {
		if t, err := time.ParseInLocation(format, raw, loc); err == nil {
			return StartOfDay(t, loc), nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   raw,
		Message: "unable to parse date string",
	}
}

// StartOfDay returns midnight of t's calendar day as seen from loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = CET
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Today is StartOfDay for now.
func Today(now time.Time, loc *time.Location) time.Time {
	return StartOfDay(now, loc)
}
