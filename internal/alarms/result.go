package alarms

import "fmt"

// IgnoredMessage records one alarm removed from the analyzable statistics,
// with the reason reported by the first matching ignore rule.
type IgnoredMessage struct {
	Record AlarmRecord
	Reason string
}

// AnalysisResult holds the outcome of analyzing one batch of events for one
// alarm type. TotalAlarms includes ignored alarms:
// TotalAlarms == AnalyzableAlarms + IgnoredAlarms always holds.
type AnalysisResult struct {
	// Stats maps alarm name to its records in event order. AlarmNames keeps
	// the insertion order of the keys so iteration stays deterministic.
	Stats      map[string][]AlarmRecord
	AlarmNames []string

	TotalAlarms      int
	AnalyzableAlarms int
	IgnoredAlarms    int
	IgnoredMessages  []IgnoredMessage

	// On-call counters, meaningful only for the oncall category.
	OncallTotal          int
	OncallInReperibilita int

	AlarmType *AlarmType
}

// NewAnalysisResult returns an empty result for the given alarm type.
func NewAnalysisResult(at *AlarmType) *AnalysisResult {
	return &AnalysisResult{
		Stats:     make(map[string][]AlarmRecord),
		AlarmType: at,
	}
}

// AddAlarm buckets an analyzable alarm record under its name.
func (r *AnalysisResult) AddAlarm(rec AlarmRecord) {
	if _, seen := r.Stats[rec.Name]; !seen {
		r.AlarmNames = append(r.AlarmNames, rec.Name)
	}
	r.Stats[rec.Name] = append(r.Stats[rec.Name], rec)
}

func (r *AnalysisResult) String() string {
	return fmt.Sprintf("AnalysisResult(total=%d, analyzable=%d, oncall=%d)",
		r.TotalAlarms, r.AnalyzableAlarms, r.OncallTotal)
}

// MergeResults combines per-alarm-type results into one. Counters are summed,
// name buckets are unioned with entry lists concatenated in input order, and
// ignored-message lists are concatenated. Inputs are not mutated. The merged
// result carries no AlarmType since it spans several.
func MergeResults(results []*AnalysisResult) *AnalysisResult {
	merged := NewAnalysisResult(nil)

	for _, r := range results {
		if r == nil {
			continue
		}
		for _, name := range r.AlarmNames {
			if _, seen := merged.Stats[name]; !seen {
				merged.AlarmNames = append(merged.AlarmNames, name)
			}
			merged.Stats[name] = append(merged.Stats[name], r.Stats[name]...)
		}

		merged.TotalAlarms += r.TotalAlarms
		merged.AnalyzableAlarms += r.AnalyzableAlarms
		merged.IgnoredAlarms += r.IgnoredAlarms
		merged.OncallTotal += r.OncallTotal
		merged.OncallInReperibilita += r.OncallInReperibilita

		merged.IgnoredMessages = append(merged.IgnoredMessages, r.IgnoredMessages...)
	}

	return merged
}
