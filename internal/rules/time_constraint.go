package rules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

// DateTimePeriod is a datetime span. Either bound may be absent (open-ended).
// A bound given as a bare date covers the whole day on the date-only side of
// the comparison.
type DateTimePeriod struct {
	Start *time.Time
	End   *time.Time

	startDateOnly bool
	endDateOnly   bool
}

var periodLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
}

func parsePeriodBound(s string) (time.Time, bool, error) {
	for _, pl := range periodLayouts {
		if t, err := time.ParseInLocation(pl.layout, s, alarms.Location()); err == nil {
			return t, pl.dateOnly, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid datetime %q: expected YYYY-MM-DD or YYYY-MM-DD HH:MM[:SS]", s)
}

// NewDateTimePeriod parses the bounds; empty strings mean open-ended.
// Both bounds given with start after end is a configuration error.
func NewDateTimePeriod(start, end string) (DateTimePeriod, error) {
	var p DateTimePeriod
	if start != "" {
		t, dateOnly, err := parsePeriodBound(start)
		if err != nil {
			return DateTimePeriod{}, err
		}
		p.Start, p.startDateOnly = &t, dateOnly
	}
	if end != "" {
		t, dateOnly, err := parsePeriodBound(end)
		if err != nil {
			return DateTimePeriod{}, err
		}
		p.End, p.endDateOnly = &t, dateOnly
	}
	if p.Start != nil && p.End != nil && p.Start.After(*p.End) {
		return DateTimePeriod{}, fmt.Errorf("period start (%s) must be before end (%s)", start, end)
	}
	return p, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.In(alarms.Location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, alarms.Location())
}

// Contains reports whether t falls within the period.
func (p DateTimePeriod) Contains(t time.Time) bool {
	if p.Start != nil {
		if p.startDateOnly {
			if dateOf(t).Before(dateOf(*p.Start)) {
				return false
			}
		} else if t.Before(*p.Start) {
			return false
		}
	}
	if p.End != nil {
		if p.endDateOnly {
			if dateOf(t).After(dateOf(*p.End)) {
				return false
			}
		} else if t.After(*p.End) {
			return false
		}
	}
	return true
}

// Equal reports structural equality.
func (p DateTimePeriod) Equal(other DateTimePeriod) bool {
	return timePtrEqual(p.Start, other.Start) && timePtrEqual(p.End, other.End)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// TimeRange is a time-of-day span in minutes since midnight. A range whose
// start is after its end wraps past midnight (22:00-02:00 matches 23:30 and
// 01:00 but not 12:00). Bounds are inclusive.
type TimeRange struct {
	start int
	end   int
}

// NewTimeRange parses "HH:MM" bounds (24-hour clock).
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := parseMinuteOfDay(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := parseMinuteOfDay(end)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{start: s, end: e}, nil
}

func parseMinuteOfDay(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err1 := strconv.Atoi(hh)
	m, err2 := strconv.Atoi(mm)
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return h*60 + m, nil
}

// Contains checks the local wall-clock time of t against the range.
func (r TimeRange) Contains(t time.Time) bool {
	local := t.In(alarms.Location())
	minute := local.Hour()*60 + local.Minute()
	if r.start <= r.end {
		return minute >= r.start && minute <= r.end
	}
	return minute >= r.start || minute <= r.end
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.start/60, r.start%60, r.end/60, r.end%60)
}

// weekdayNames maps names to numbers, 0=Monday .. 6=Sunday.
var weekdayNames = map[string]int{
	"monday": 0, "mon": 0,
	"tuesday": 1, "tue": 1,
	"wednesday": 2, "wed": 2,
	"thursday": 3, "thu": 3,
	"friday": 4, "fri": 4,
	"saturday": 5, "sat": 5,
	"sunday": 6, "sun": 6,
}

// ParseWeekday accepts a weekday name ("monday", "mon") or a number 0-6
// (0=Monday, 6=Sunday).
func ParseWeekday(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("invalid weekday number %d: must be 0-6 (0=Monday)", n)
		}
		return n, nil
	}
	if n, ok := weekdayNames[strings.ToLower(s)]; ok {
		return n, nil
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

// TimeConstraint is a composite predicate over an instant: datetime periods,
// weekdays and time-of-day ranges. All configured kinds must be satisfied
// (AND across kinds); within one kind any entry suffices (OR). An empty
// constraint matches unconditionally.
type TimeConstraint struct {
	Periods  []DateTimePeriod
	Weekdays []int // 0=Monday .. 6=Sunday
	Hours    []TimeRange
}

// NewTimeConstraint validates weekday numbers and assembles the constraint.
func NewTimeConstraint(periods []DateTimePeriod, weekdays []int, hours []TimeRange) (TimeConstraint, error) {
	for _, d := range weekdays {
		if d < 0 || d > 6 {
			return TimeConstraint{}, fmt.Errorf("invalid weekday number %d: must be 0-6 (0=Monday)", d)
		}
	}
	return TimeConstraint{Periods: periods, Weekdays: weekdays, Hours: hours}, nil
}

// IsEmpty reports whether the constraint has no restrictions.
func (c TimeConstraint) IsEmpty() bool {
	return len(c.Periods) == 0 && len(c.Weekdays) == 0 && len(c.Hours) == 0
}

// Matches reports whether t satisfies every configured sub-constraint kind.
func (c TimeConstraint) Matches(t time.Time) bool {
	if c.IsEmpty() {
		return true
	}

	if len(c.Periods) > 0 {
		ok := false
		for _, p := range c.Periods {
			if p.Contains(t) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(c.Weekdays) > 0 {
		// time.Weekday has Sunday=0; the constraint uses Monday=0.
		wd := (int(t.In(alarms.Location()).Weekday()) + 6) % 7
		ok := false
		for _, d := range c.Weekdays {
			if d == wd {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if len(c.Hours) > 0 {
		ok := false
		for _, h := range c.Hours {
			if h.Contains(t) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	return true
}

// Equal reports structural equality.
func (c TimeConstraint) Equal(other TimeConstraint) bool {
	if len(c.Periods) != len(other.Periods) ||
		len(c.Weekdays) != len(other.Weekdays) ||
		len(c.Hours) != len(other.Hours) {
		return false
	}
	for i, p := range c.Periods {
		if !p.Equal(other.Periods[i]) {
			return false
		}
	}
	for i, d := range c.Weekdays {
		if d != other.Weekdays[i] {
			return false
		}
	}
	for i, h := range c.Hours {
		if h != other.Hours[i] {
			return false
		}
	}
	return true
}
