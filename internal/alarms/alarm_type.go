package alarms

import (
	"fmt"
	"regexp"
	"time"
)

// AlarmCategory distinguishes ordinary alarms from on-call ones.
type AlarmCategory string

const (
	CategoryNormal AlarmCategory = "normal"
	CategoryOncall AlarmCategory = "oncall"
)

// AlarmType is one product/environment/category classification. Alarm names
// are matched with a case-insensitive search; for the normal type of a product
// that also has an on-call pattern, a name matching the on-call pattern is
// excluded (RE2 has no lookahead, so the exclusion is an explicit second check
// rather than pattern composition).
type AlarmType struct {
	Product     string
	Environment string
	Category    AlarmCategory
	ChannelID   string
	Description string

	pattern *regexp.Regexp
	exclude *regexp.Regexp
}

// NewAlarmType compiles pattern (and optional excludePattern) case-insensitively.
func NewAlarmType(product, environment string, category AlarmCategory, channelID, pattern, excludePattern, description string) (*AlarmType, error) {
	at := &AlarmType{
		Product:     product,
		Environment: environment,
		Category:    category,
		ChannelID:   channelID,
		Description: description,
	}
	var err error
	if pattern != "" {
		at.pattern, err = regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid alarm pattern %q: %w", pattern, err)
		}
	}
	if excludePattern != "" {
		at.exclude, err = regexp.Compile("(?i)" + excludePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", excludePattern, err)
		}
	}
	return at, nil
}

// Matches reports whether an alarm name belongs to this type.
func (at *AlarmType) Matches(alarmName string) bool {
	if alarmName == "" || at.pattern == nil {
		return false
	}
	if !at.pattern.MatchString(alarmName) {
		return false
	}
	if at.exclude != nil && at.exclude.MatchString(alarmName) {
		return false
	}
	return true
}

// IsOncall reports whether this is an on-call alarm type.
func (at *AlarmType) IsOncall() bool {
	return at.Category == CategoryOncall
}

// TimeWindow returns the analysis window for a dd-mm-yy date or
// "start:end" range, according to this type's category: on-call alarms are
// attributed to calendar days, normal alarms to 18:00-to-18:00 shift days.
func (at *AlarmType) TimeWindow(dateArg string) (start, end time.Time, err error) {
	if at.IsOncall() {
		return OncallWindow(dateArg)
	}
	return EveningWindow(dateArg)
}

func (at *AlarmType) String() string {
	return fmt.Sprintf("AlarmType(%s/%s/%s)", at.Product, at.Environment, at.Category)
}

// BuildAlarmTypes builds the alarm types for one product/environment. There
// is always a normal type; when an on-call pattern is configured the normal
// type excludes it, and for the prod environment a second, on-call type is
// added on the on-call channel.
func BuildAlarmTypes(product, environment, channelID, oncallChannelID, oncallPattern string) ([]*AlarmType, error) {
	var types []*AlarmType

	normalPattern := ".*"
	normalExclude := ""
	if oncallPattern != "" {
		normalExclude = oncallPattern
	}

	normal, err := NewAlarmType(product, environment, CategoryNormal, channelID,
		normalPattern, normalExclude,
		fmt.Sprintf("%s %s normal alarms", product, environment))
	if err != nil {
		return nil, err
	}
	types = append(types, normal)

	if environment == "prod" && oncallPattern != "" {
		oncall, err := NewAlarmType(product, environment, CategoryOncall, oncallChannelID,
			oncallPattern, "",
			fmt.Sprintf("%s %s oncall alarms", product, environment))
		if err != nil {
			return nil, err
		}
		types = append(types, oncall)
	}

	return types, nil
}
