package extraction

import (
	"github.com/alarmscope/alarmscope/internal/alarms"
)

// AttachmentExtractor reads alarms posted as message attachments. The
// opening line `#<id>: ALARM: "<name>" in <location>` is looked for in the
// attachment title first, then in the fallback text.
type AttachmentExtractor struct{}

// NewAttachmentExtractor creates an attachment-style extractor.
func NewAttachmentExtractor() *AttachmentExtractor {
	return &AttachmentExtractor{}
}

// Extract returns the normalized alarm record, or nil when neither the title
// nor the fallback carries the opening line.
func (e *AttachmentExtractor) Extract(msg *alarms.Message) *alarms.AlarmRecord {
	if len(msg.Attachments) == 0 {
		return nil
	}
	att := msg.Attachments[0]

	id, name, location, ok := alarms.ParseOpeningLine(att.Title)
	if !ok {
		id, name, location, ok = alarms.ParseOpeningLine(att.Fallback)
	}
	if !ok {
		return nil
	}

	return &alarms.AlarmRecord{
		ID:        id,
		Name:      name,
		Location:  location,
		Timestamp: alarms.ParseTimestamp(msg.Ts),
		RawText:   att.Fallback,
	}
}
