// Package analysis drives the per-alarm-type pipeline: extraction,
// classification, ignore evaluation and on-call tagging over a batch of raw
// events. It is pure and synchronous; batches for different alarm types are
// independent and may run concurrently on the caller's side.
package analysis

import (
	"github.com/alarmscope/alarmscope/internal/alarms"
	"github.com/alarmscope/alarmscope/internal/alarms/extraction"
	"github.com/alarmscope/alarmscope/internal/rules"
)

// Analyzer runs batches of raw events through extraction, classification and
// the ignore-rule engine. It holds only the configuration it was built with.
type Analyzer struct {
	extractor extraction.Extractor
	engine    *rules.Engine
}

// NewAnalyzer builds an analyzer from an extraction strategy and a rule
// engine.
func NewAnalyzer(extractor extraction.Extractor, engine *rules.Engine) *Analyzer {
	return &Analyzer{extractor: extractor, engine: engine}
}

// Analyze consumes one batch of events for the given alarm type. Events that
// fail extraction or do not match the type's pattern are skipped silently and
// count toward nothing. Matching events count toward TotalAlarms; the ignore
// engine then splits them into name buckets or the ignored list. For on-call
// types, analyzable alarms additionally feed the on-call counters; an alarm
// with no timestamp never counts as reperibilità.
func (a *Analyzer) Analyze(messages []alarms.Message, alarmType *alarms.AlarmType) *alarms.AnalysisResult {
	result := alarms.NewAnalysisResult(alarmType)
	env := alarmType.Environment

	for i := range messages {
		msg := &messages[i]

		record := a.extractor.Extract(msg)
		if record == nil {
			continue
		}
		if !alarmType.Matches(record.Name) {
			continue
		}

		result.TotalAlarms++

		if a.engine.ShouldIgnore(msg, env, record.Timestamp) {
			result.IgnoredAlarms++
			result.IgnoredMessages = append(result.IgnoredMessages, alarms.IgnoredMessage{
				Record: *record,
				Reason: a.engine.Reason(msg, env, record.Timestamp),
			})
			continue
		}

		result.AnalyzableAlarms++
		result.AddAlarm(*record)

		if alarmType.IsOncall() {
			result.OncallTotal++
			if alarms.InReperibilita(record.Timestamp) {
				result.OncallInReperibilita++
			}
		}
	}

	return result
}
