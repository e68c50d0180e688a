package extraction

import (
	"testing"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

func TestAttachmentExtractorFromTitle(t *testing.T) {
	e := NewAttachmentExtractor()
	msg := &alarms.Message{
		Ts: "1735732800.000000",
		Attachments: []alarms.Attachment{{
			Title:    `#45533: ALARM: "DB-Timeout" in eu-south-1`,
			Fallback: "full fallback text",
		}},
	}

	rec := e.Extract(msg)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.ID != "45533" || rec.Name != "DB-Timeout" || rec.Location != "eu-south-1" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.RawText != "full fallback text" {
		t.Errorf("raw text should come from the fallback, got %q", rec.RawText)
	}
	if rec.Timestamp == nil || rec.Timestamp.Unix() != 1735732800 {
		t.Errorf("unexpected timestamp: %v", rec.Timestamp)
	}
}

func TestAttachmentExtractorFallsBackToFallbackField(t *testing.T) {
	e := NewAttachmentExtractor()
	msg := &alarms.Message{
		Attachments: []alarms.Attachment{{
			Title:    "a human-readable headline",
			Fallback: `#7: ALARM: "Disk-Full" in host-42`,
		}},
	}

	rec := e.Extract(msg)
	if rec == nil {
		t.Fatal("expected a record from the fallback field")
	}
	if rec.Name != "Disk-Full" || rec.ID != "7" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.Timestamp != nil {
		t.Error("missing ts should yield a nil timestamp, not an error")
	}
}

func TestAttachmentExtractorMiss(t *testing.T) {
	e := NewAttachmentExtractor()
	if rec := e.Extract(&alarms.Message{Text: "no attachments"}); rec != nil {
		t.Errorf("expected nil for a message without attachments, got %+v", rec)
	}
	msg := &alarms.Message{Attachments: []alarms.Attachment{{Title: "chatter", Fallback: "more chatter"}}}
	if rec := e.Extract(msg); rec != nil {
		t.Errorf("expected nil when neither field has the opening line, got %+v", rec)
	}
}

func TestFileExtractor(t *testing.T) {
	e := NewFileExtractor()
	msg := &alarms.Message{
		Ts: "1735732800.000000",
		Files: []alarms.File{{
			ID:        "F123",
			Name:      `ALARM "Queue-Depth" in batch-cluster`,
			PlainText: "queue depth exceeded threshold",
		}},
	}

	rec := e.Extract(msg)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Name != "Queue-Depth" {
		t.Errorf("quoted substring should win as the name, got %q", rec.Name)
	}
	if rec.Location != "batch-cluster" {
		t.Errorf("unexpected location: %q", rec.Location)
	}
	if rec.ID != "F123" || rec.RawText != "queue depth exceeded threshold" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestFileExtractorDefaults(t *testing.T) {
	e := NewFileExtractor()
	msg := &alarms.Message{Files: []alarms.File{{Name: "plain-alert.log"}}}

	rec := e.Extract(msg)
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Name != "plain-alert.log" {
		t.Errorf("unquoted name should fall back to the full file name, got %q", rec.Name)
	}
	if rec.Location != "Unknown" {
		t.Errorf("missing location should default to Unknown, got %q", rec.Location)
	}
	if rec.ID != "N/A" {
		t.Errorf("missing id should default to N/A, got %q", rec.ID)
	}
}

func TestFileExtractorMiss(t *testing.T) {
	e := NewFileExtractor()
	if rec := e.Extract(&alarms.Message{Text: "no files"}); rec != nil {
		t.Errorf("expected nil for a message without files, got %+v", rec)
	}
}

func TestProviderExactMatch(t *testing.T) {
	p := NewProvider()
	e, err := p.Get("INTEROP", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*FileExtractor); !ok {
		t.Errorf("INTEROP test should use the file extractor, got %T", e)
	}
}

func TestProviderProdFallback(t *testing.T) {
	p := NewProvider()
	e, err := p.Get("SEND", "staging")
	if err != nil {
		t.Fatalf("expected prod fallback, got error: %v", err)
	}
	if _, ok := e.(*AttachmentExtractor); !ok {
		t.Errorf("SEND fallback should use the attachment extractor, got %T", e)
	}
}

func TestProviderUnknownProduct(t *testing.T) {
	p := NewProvider()
	if _, err := p.Get("NOPE", "prod"); err == nil {
		t.Error("expected a configuration error for an unknown product")
	}
	if p.Supports("NOPE", "prod") {
		t.Error("Supports should be false for an unknown product")
	}
	if !p.Supports("send", "uat") {
		t.Error("lookup should be case-insensitive on product")
	}
}
