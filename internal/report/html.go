// Package report renders analysis results for human consumption. Rendering
// sits outside the core: it consumes finished AnalysisResult values and never
// feeds anything back into the pipeline.
package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

const maxListedIDs = 10

// WriteHTML writes an HTML report for a merged analysis result and returns
// the file path.
func WriteHTML(dir string, result *alarms.AnalysisResult, product, environment, dateArg string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("alarm_report_%s_%s_%s.html", product, environment, dateArg))

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Alarm Statistics for %s - %s %s</h1>\n",
		html.EscapeString(dateArg), html.EscapeString(product), html.EscapeString(environment))

	if result.TotalAlarms == 0 {
		fmt.Fprintf(&b, "<p>No alarm messages found for %s</p>\n", html.EscapeString(dateArg))
	} else {
		fmt.Fprintf(&b, "<p>Total alarm messages: %d (analyzable %d, ignored %d)</p>\n",
			result.TotalAlarms, result.AnalyzableAlarms, result.IgnoredAlarms)
		if result.OncallTotal > 0 {
			fmt.Fprintf(&b, "<p>On-call alarms: %d, of which %d in reperibilit&agrave;</p>\n",
				result.OncallTotal, result.OncallInReperibilita)
		}
		b.WriteString("<hr>\n")
		writeAlarmSections(&b, result)
		writeIgnoredSection(&b, result.IgnoredMessages)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// sortedNames returns alarm names by descending occurrence count, ties by
// insertion order.
func sortedNames(result *alarms.AnalysisResult) []string {
	names := make([]string, len(result.AlarmNames))
	copy(names, result.AlarmNames)
	sort.SliceStable(names, func(i, j int) bool {
		return len(result.Stats[names[i]]) > len(result.Stats[names[j]])
	})
	return names
}

func writeAlarmSections(b *strings.Builder, result *alarms.AnalysisResult) {
	for _, name := range sortedNames(result) {
		entries := result.Stats[name]
		fmt.Fprintf(b, "<h3>%d x %s</h3>\n", len(entries), html.EscapeString(name))

		ids := make([]string, 0, maxListedIDs)
		for i, rec := range entries {
			if i == maxListedIDs {
				break
			}
			if rec.Timestamp != nil {
				ids = append(ids, fmt.Sprintf("#%s (%s)", rec.ID,
					rec.Timestamp.In(alarms.Location()).Format("02-01-2006 15:04:05")))
			} else {
				ids = append(ids, "#"+rec.ID)
			}
		}
		idsStr := strings.Join(ids, ", ")
		if len(entries) > maxListedIDs {
			idsStr += fmt.Sprintf(" ... and %d more", len(entries)-maxListedIDs)
		}
		fmt.Fprintf(b, "<p><strong>IDs:</strong> %s</p>\n", html.EscapeString(idsStr))

		writeHourlyDistribution(b, entries)
	}
	b.WriteString("<hr>\n")
}

func writeHourlyDistribution(b *strings.Builder, entries []alarms.AlarmRecord) {
	var counts [24]int
	total := 0
	for _, rec := range entries {
		if rec.Timestamp != nil {
			counts[rec.Timestamp.In(alarms.Location()).Hour()]++
			total++
		}
	}
	if total == 0 {
		return
	}

	b.WriteString("<table>\n<thead><tr><th>Hour</th><th>Occurrences</th></tr></thead>\n<tbody>\n")
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		fmt.Fprintf(b, "<tr><td>%02d:00-%02d:00</td><td>%d</td></tr>\n",
			hour, (hour+1)%24, counts[hour])
	}
	b.WriteString("</tbody></table>\n")
}

func writeIgnoredSection(b *strings.Builder, ignored []alarms.IgnoredMessage) {
	if len(ignored) == 0 {
		return
	}
	fmt.Fprintf(b, "<h2>Ignored messages (%d)</h2>\n<ul>\n", len(ignored))
	for _, im := range ignored {
		fmt.Fprintf(b, "<li>%s (#%s): %s</li>\n",
			html.EscapeString(im.Record.Name), html.EscapeString(im.Record.ID),
			html.EscapeString(im.Reason))
	}
	b.WriteString("</ul>\n")
}
