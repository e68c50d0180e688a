package extraction

import (
	"regexp"
	"strings"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

var (
	locationPattern   = regexp.MustCompile(`in\s+(.+)`)
	quotedNamePattern = regexp.MustCompile(`"([^"]+)"`)
)

// FileExtractor reads alarms posted as file uploads: the file name carries
// the alarm name and location, the plain text the full alert body.
type FileExtractor struct{}

// NewFileExtractor creates a file-style extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{}
}

// Extract returns the normalized alarm record, or nil when the event has no
// files. The alarm name prefers a quoted substring of the file name; the
// location is the text after "in ", defaulting to "Unknown".
func (e *FileExtractor) Extract(msg *alarms.Message) *alarms.AlarmRecord {
	if len(msg.Files) == 0 {
		return nil
	}
	f := msg.Files[0]

	name := f.Name
	if m := quotedNamePattern.FindStringSubmatch(f.Name); m != nil {
		name = m[1]
	}

	location := "Unknown"
	if m := locationPattern.FindStringSubmatch(f.Name); m != nil {
		location = strings.TrimSpace(m[1])
	}

	id := f.ID
	if id == "" {
		id = "N/A"
	}

	return &alarms.AlarmRecord{
		ID:        id,
		Name:      name,
		Location:  location,
		Timestamp: alarms.ParseTimestamp(msg.Ts),
		RawText:   f.PlainText,
	}
}
