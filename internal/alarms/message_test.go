package alarms

import (
	"testing"
	"time"
)

func TestParseOpeningLine(t *testing.T) {
	id, name, location, ok := ParseOpeningLine(`#45533: ALARM: "DB-Timeout" in eu-south-1`)
	if !ok {
		t.Fatal("expected opening line to parse")
	}
	if id != "45533" || name != "DB-Timeout" || location != "eu-south-1" {
		t.Errorf("got id=%q name=%q location=%q", id, name, location)
	}
}

func TestParseOpeningLineSearchesInsideText(t *testing.T) {
	_, name, _, ok := ParseOpeningLine(`CloudWatch: #7: ALARM: "Disk-Full" in host-42 (auto)`)
	if !ok || name != "Disk-Full" {
		t.Errorf("expected search inside text to find Disk-Full, got %q ok=%v", name, ok)
	}
}

func TestParseOpeningLineMiss(t *testing.T) {
	for _, s := range []string{"", "ALARM without id", `#x: ALARM: "a" in b`} {
		if _, _, _, ok := ParseOpeningLine(s); ok {
			t.Errorf("expected no match for %q", s)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	ts := ParseTimestamp("1735732800.500000")
	if ts == nil {
		t.Fatal("expected a timestamp")
	}
	if !ts.Equal(time.Unix(1735732800, 500000000)) {
		t.Errorf("unexpected instant: %v", ts)
	}

	whole := ParseTimestamp("1735732800")
	if whole == nil || whole.Unix() != 1735732800 {
		t.Errorf("unexpected instant for whole seconds: %v", whole)
	}
}

func TestParseTimestampMissingOrMalformed(t *testing.T) {
	if ParseTimestamp("") != nil {
		t.Error("empty ts should yield nil")
	}
	if ParseTimestamp("not-a-number") != nil {
		t.Error("malformed ts should yield nil")
	}
}
