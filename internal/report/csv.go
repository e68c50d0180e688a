package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

// WriteCSV writes a per-alarm-name summary CSV and returns the file path.
// Rows are sorted by descending count, matching the HTML report.
func WriteCSV(dir string, result *alarms.AnalysisResult, product, environment, dateArg string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("alarm_statistics_%s_%s_%s.csv", product, environment, dateArg))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"alarm_name", "total_count", "first_occurrence", "last_occurrence", "alarm_ids"}); err != nil {
		return "", err
	}

	for _, name := range sortedNames(result) {
		entries := result.Stats[name]

		first, last := "", ""
		for _, rec := range entries {
			if rec.Timestamp == nil {
				continue
			}
			ts := rec.Timestamp.In(alarms.Location()).Format("2006-01-02 15:04:05")
			if first == "" || ts < first {
				first = ts
			}
			if ts > last {
				last = ts
			}
		}

		ids := make([]string, len(entries))
		for i, rec := range entries {
			ids[i] = rec.ID
		}

		row := []string{name, strconv.Itoa(len(entries)), first, last, strings.Join(ids, ";")}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, nil
}
