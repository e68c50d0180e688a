package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/alarmscope/alarmscope/internal/alarms"
	"github.com/alarmscope/alarmscope/internal/alarms/extraction"
	"github.com/alarmscope/alarmscope/internal/rules"
)

func alarmMessage(id int, name, location, ts string) alarms.Message {
	return alarms.Message{
		Ts: ts,
		Attachments: []alarms.Attachment{{
			Title:    fmt.Sprintf("#%d: ALARM: %q in %s", id, name, location),
			Fallback: fmt.Sprintf("#%d: ALARM: %q in %s", id, name, location),
		}},
	}
}

func normalType(t *testing.T) *alarms.AlarmType {
	t.Helper()
	at, err := alarms.NewAlarmType("SEND", "prod", alarms.CategoryNormal, "C1", ".*", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return at
}

func TestAnalyzeBucketsAndCounts(t *testing.T) {
	messages := []alarms.Message{
		alarmMessage(1, "DB-Timeout", "eu-south-1", "1735732800.000000"),
		alarmMessage(2, "DB-Timeout", "eu-south-1", "1735736400.000000"),
		alarmMessage(3, "Disk-Full", "host-42", "1735740000.000000"),
		alarmMessage(4, "DB-Timeout", "eu-south-1", "1735743600.000000"),
		{Text: "just chatter, not an alarm"},
	}
	engine := rules.NewEngine([]rules.IgnoreRule{{Pattern: "Disk", Path: "*"}})
	analyzer := NewAnalyzer(extraction.NewAttachmentExtractor(), engine)

	result := analyzer.Analyze(messages, normalType(t))

	if result.TotalAlarms != 4 {
		t.Errorf("expected 4 total alarms, got %d", result.TotalAlarms)
	}
	if result.IgnoredAlarms != 1 {
		t.Errorf("expected 1 ignored alarm, got %d", result.IgnoredAlarms)
	}
	if result.AnalyzableAlarms != 3 {
		t.Errorf("expected 3 analyzable alarms, got %d", result.AnalyzableAlarms)
	}
	if result.TotalAlarms != result.AnalyzableAlarms+result.IgnoredAlarms {
		t.Error("total must equal analyzable + ignored")
	}

	if len(result.Stats) != 1 || len(result.Stats["DB-Timeout"]) != 3 {
		t.Errorf("expected only DB-Timeout with 3 records, got %v", result.AlarmNames)
	}
	// Event order preserved inside the bucket.
	ids := result.Stats["DB-Timeout"]
	if ids[0].ID != "1" || ids[1].ID != "2" || ids[2].ID != "4" {
		t.Errorf("records out of event order: %+v", ids)
	}

	if len(result.IgnoredMessages) != 1 {
		t.Fatalf("expected 1 ignored message, got %d", len(result.IgnoredMessages))
	}
	if result.IgnoredMessages[0].Record.Name != "Disk-Full" {
		t.Errorf("unexpected ignored record: %+v", result.IgnoredMessages[0])
	}
	if result.IgnoredMessages[0].Reason == "" {
		t.Error("ignored message should carry the rule's reason")
	}
}

func TestAnalyzeSkipsNonMatchingNames(t *testing.T) {
	at, err := alarms.NewAlarmType("SEND", "prod", alarms.CategoryNormal, "C1", "timeout", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	messages := []alarms.Message{
		alarmMessage(1, "DB-Timeout", "eu-south-1", "1735732800.000000"),
		alarmMessage(2, "Disk-Full", "host-42", "1735736400.000000"),
	}
	analyzer := NewAnalyzer(extraction.NewAttachmentExtractor(), rules.NewEngine(nil))

	result := analyzer.Analyze(messages, at)
	// The non-matching alarm counts toward nothing for this type.
	if result.TotalAlarms != 1 || result.AnalyzableAlarms != 1 || result.IgnoredAlarms != 0 {
		t.Errorf("unexpected counts: %+v", result)
	}
}

func TestAnalyzeOncallCounters(t *testing.T) {
	at, err := alarms.NewAlarmType("SEND", "prod", alarms.CategoryOncall, "C-oncall", "^OnCall", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inside := time.Date(2025, time.June, 16, 12, 0, 0, 0, alarms.Location())
	outside := time.Date(2025, time.June, 16, 22, 0, 0, 0, alarms.Location())

	messages := []alarms.Message{
		alarmMessage(1, "OnCall DB down", "eu-south-1", fmt.Sprintf("%d.000000", inside.Unix())),
		alarmMessage(2, "OnCall disk", "host-42", fmt.Sprintf("%d.000000", outside.Unix())),
		// No timestamp: counts toward oncall total but never reperibilità.
		alarmMessage(3, "OnCall net", "host-43", ""),
	}
	analyzer := NewAnalyzer(extraction.NewAttachmentExtractor(), rules.NewEngine(nil))

	result := analyzer.Analyze(messages, at)
	if result.OncallTotal != 3 {
		t.Errorf("expected 3 oncall alarms, got %d", result.OncallTotal)
	}
	if result.OncallInReperibilita != 1 {
		t.Errorf("expected 1 alarm in reperibilità, got %d", result.OncallInReperibilita)
	}
}

func TestAnalyzeIgnoredOncallAlarmsDoNotCount(t *testing.T) {
	at, err := alarms.NewAlarmType("SEND", "prod", alarms.CategoryOncall, "C-oncall", "^OnCall", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	messages := []alarms.Message{
		alarmMessage(1, "OnCall maintenance probe", "host-1", "1735732800.000000"),
	}
	engine := rules.NewEngine([]rules.IgnoreRule{{Pattern: "maintenance", Path: "*"}})
	analyzer := NewAnalyzer(extraction.NewAttachmentExtractor(), engine)

	result := analyzer.Analyze(messages, at)
	if result.IgnoredAlarms != 1 || result.OncallTotal != 0 {
		t.Errorf("ignored oncall alarm should not feed oncall counters: %+v", result)
	}
}
