package alarms

import (
	"regexp"
	"strconv"
	"time"
)

// Message is the normalized raw event the analyzer consumes. The transport
// layer converts provider-specific payloads (Slack messages) into this shape;
// the core never touches the wire format directly.
type Message struct {
	Text        string
	Ts          string // seconds since epoch, as delivered ("1735732800.000200")
	Attachments []Attachment
	Files       []File
}

// Attachment mirrors the attachment sub-structure of a raw event.
type Attachment struct {
	Title    string
	Fallback string
	Text     string
}

// File mirrors the file sub-structure of a raw event.
type File struct {
	ID        string
	Name      string
	PlainText string
}

// AlarmRecord is the normalized alarm extracted from one raw event.
// Immutable once produced by an extractor.
type AlarmRecord struct {
	ID        string // "N/A" when the source carries no numeric id
	Name      string
	Location  string
	Timestamp *time.Time // nil when the event has no timestamp field
	RawText   string
}

// openingPattern is the alarm-opening grammar shared by extraction and by
// ignore rules using the attachments.title.alarm_name path:
//
//	#45533: ALARM: "AlarmName" in Location
var openingPattern = regexp.MustCompile(`#(\d+): ALARM: "([^"]+)" in (.+)`)

// ParseOpeningLine extracts id, alarm name and location from text following
// the alarm-opening grammar. ok is false when the text does not contain it.
func ParseOpeningLine(s string) (id, name, location string, ok bool) {
	m := openingPattern.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// ParseTimestamp converts a seconds-since-epoch string (possibly fractional,
// Slack "ts" style) into a time. A missing or malformed value yields nil:
// downstream consumers treat a nil timestamp as "no time information".
func ParseTimestamp(ts string) *time.Time {
	if ts == "" {
		return nil
	}
	secs, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(int64(secs), int64((secs-float64(int64(secs)))*1e9))
	return &t
}
