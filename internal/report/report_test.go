package report

import (
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

func buildResult() *alarms.AnalysisResult {
	r := alarms.NewAnalysisResult(nil)
	base := time.Date(2025, time.September, 19, 10, 0, 0, 0, alarms.Location())
	for i, name := range []string{"Disk-Full", "DB-Timeout", "DB-Timeout", "DB-Timeout"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		r.AddAlarm(alarms.AlarmRecord{ID: strconv.Itoa(i + 1), Name: name, Timestamp: &ts})
		r.AnalyzableAlarms++
		r.TotalAlarms++
	}
	r.IgnoredAlarms++
	r.TotalAlarms++
	r.IgnoredMessages = append(r.IgnoredMessages, alarms.IgnoredMessage{
		Record: alarms.AlarmRecord{ID: "9", Name: "Probe <script>"},
		Reason: "maintenance window",
	})
	return r
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteHTML(dir, buildResult(), "SEND", "prod", "19-09-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "Total alarm messages: 5 (analyzable 4, ignored 1)") {
		t.Errorf("missing totals line in:\n%s", out)
	}
	// Most frequent alarm first.
	if strings.Index(out, "3 x DB-Timeout") > strings.Index(out, "1 x Disk-Full") {
		t.Error("sections should be ordered by descending count")
	}
	if !strings.Contains(out, "Ignored messages (1)") || !strings.Contains(out, "maintenance window") {
		t.Error("ignored section missing")
	}
	if strings.Contains(out, "<script>") {
		t.Error("alarm names must be HTML-escaped")
	}
}

func TestWriteHTMLEmptyResult(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteHTML(dir, alarms.NewAnalysisResult(nil), "SEND", "prod", "19-09-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "No alarm messages found") {
		t.Error("empty result should render the no-messages notice")
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(dir, buildResult(), "SEND", "prod", "19-09-25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "alarm_name,total_count,first_occurrence,last_occurrence,alarm_ids" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "DB-Timeout,3,") {
		t.Errorf("most frequent alarm should come first: %q", lines[1])
	}
	if !strings.Contains(lines[1], "2;3;4") {
		t.Errorf("ids should be semicolon-joined: %q", lines[1])
	}
}
