package alarms

import "time"

// Business hours in the deployment timezone. The upper bound is exclusive:
// 09:00 is inside, 18:00 is outside.
const (
	businessHoursStart = 9
	businessHoursEnd   = 18
)

// InReperibilita reports whether an on-call alarm fell outside business hours
// (reperibilità = on-call standby). The instant is localized through the zone
// database, so the check stays correct across DST transitions.
func InReperibilita(t *time.Time) bool {
	if t == nil {
		return false
	}
	hour := t.In(location).Hour()
	return hour < businessHoursStart || hour >= businessHoursEnd
}
