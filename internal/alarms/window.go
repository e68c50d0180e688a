package alarms

import (
	"fmt"
	"strings"
	"time"
)

// Deployment timezone. Window bounds and business hours are wall-clock times
// here; conversions go through the zone database so DST transitions resolve
// to the correct UTC offset per instant.
var location = mustLoadLocation("Europe/Rome")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("timezone %s not available: %v", name, err))
	}
	return loc
}

// Location returns the deployment timezone used for all wall-clock logic.
func Location() *time.Location {
	return location
}

const dateLayout = "02-01-06" // dd-mm-yy

// ParseDateArg parses a single dd-mm-yy date or a "start:end" range into the
// first and last calendar day of the span (midnight, deployment timezone).
func ParseDateArg(dateArg string) (first, last time.Time, err error) {
	if start, end, ok := strings.Cut(dateArg, ":"); ok {
		first, err = time.ParseInLocation(dateLayout, strings.TrimSpace(start), location)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: expected dd-mm-yy", start)
		}
		last, err = time.ParseInLocation(dateLayout, strings.TrimSpace(end), location)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: expected dd-mm-yy", end)
		}
		if first.After(last) {
			return time.Time{}, time.Time{}, fmt.Errorf("start date %s must not be after end date %s", start, end)
		}
		return first, last, nil
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(dateArg), location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: expected dd-mm-yy", dateArg)
	}
	return day, day, nil
}

// EveningWindow returns the shift-day window for normal alarms: 18:00 local
// time on the day before the first date through 18:00 local time on the last
// date.
func EveningWindow(dateArg string) (start, end time.Time, err error) {
	first, last, err := ParseDateArg(dateArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eve := first.AddDate(0, 0, -1)
	start = time.Date(eve.Year(), eve.Month(), eve.Day(), 18, 0, 0, 0, location)
	end = time.Date(last.Year(), last.Month(), last.Day(), 18, 0, 0, 0, location)
	return start, end, nil
}

// OncallWindow returns the calendar-day window for on-call alarms:
// 00:00:00.000 on the first date through 23:59:59.999999 on the last date.
func OncallWindow(dateArg string) (start, end time.Time, err error) {
	first, last, err := ParseDateArg(dateArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, location)
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999999000, location)
	return start, end, nil
}
