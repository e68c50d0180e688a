package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

// Engine evaluates an ordered list of ignore rules against normalized events.
// The ignore decision is the OR over all rules; the reported reason and
// matched rule come from the first rule (declaration order) that matches both
// structurally and time-wise, so reason reporting is deterministic.
type Engine struct {
	rules []IgnoreRule
}

// NewEngine builds an engine over the given rules. Pass DefaultRules()
// explicitly when a product has no rules of its own.
func NewEngine(ruleList []IgnoreRule) *Engine {
	return &Engine{rules: ruleList}
}

// Rules returns a copy of the rule list.
func (e *Engine) Rules() []IgnoreRule {
	out := make([]IgnoreRule, len(e.rules))
	copy(out, e.rules)
	return out
}

// ShouldIgnore reports whether the message is removed from the analyzable
// statistics. ts is the event timestamp, nil when unknown.
func (e *Engine) ShouldIgnore(msg *alarms.Message, environment string, ts *time.Time) bool {
	_, ok := e.MatchedRule(msg, environment, ts)
	return ok
}

// MatchedRule returns the first rule that causes the message to be ignored.
func (e *Engine) MatchedRule(msg *alarms.Message, environment string, ts *time.Time) (IgnoreRule, bool) {
	for _, rule := range e.rules {
		if e.ruleMatches(rule, msg, environment, ts) {
			return rule, true
		}
	}
	return IgnoreRule{}, false
}

// Reason returns the human-readable reason for ignoring the message, from
// the first matching rule.
func (e *Engine) Reason(msg *alarms.Message, environment string, ts *time.Time) string {
	rule, ok := e.MatchedRule(msg, environment, ts)
	if !ok {
		return "Unknown reason"
	}
	if rule.Reason != "" {
		return rule.Reason
	}
	if rule.Path == "*" {
		return fmt.Sprintf("Pattern %q found (wildcard search)", rule.Pattern)
	}
	return fmt.Sprintf("Pattern %q found in %s", rule.Pattern, rule.Path)
}

func (e *Engine) ruleMatches(rule IgnoreRule, msg *alarms.Message, environment string, ts *time.Time) bool {
	if environment != "" && !rule.AppliesToEnvironment(environment) {
		return false
	}
	if !ruleTimeValid(rule, ts) {
		return false
	}

	pattern := rule.ExpandedPattern(environment)
	if rule.Path == "*" {
		return matchAllFields(pattern, msg)
	}
	for _, value := range valuesByPath(rule.Path, msg) {
		if containsPattern(pattern, value) {
			return true
		}
	}
	return false
}

// ruleTimeValid checks the rule's validity and exclusion constraints against
// the event timestamp. A rule carrying a time constraint does not apply to an
// event with an unknown timestamp: neither validity nor exclusion can be
// evaluated, so the rule never triggers.
func ruleTimeValid(rule IgnoreRule, ts *time.Time) bool {
	if rule.Validity.IsEmpty() && rule.Exclusions.IsEmpty() {
		return true
	}
	if ts == nil {
		return false
	}
	if !rule.Validity.IsEmpty() && !rule.Validity.Matches(*ts) {
		return false
	}
	if !rule.Exclusions.IsEmpty() && rule.Exclusions.Matches(*ts) {
		return false
	}
	return true
}

// matchAllFields searches the fixed set of wildcard locations: the message
// text, every attachment's title/fallback/text and every file's name and
// plain text.
func matchAllFields(pattern string, msg *alarms.Message) bool {
	if containsPattern(pattern, msg.Text) {
		return true
	}
	for _, att := range msg.Attachments {
		if containsPattern(pattern, att.Title) ||
			containsPattern(pattern, att.Fallback) ||
			containsPattern(pattern, att.Text) {
			return true
		}
	}
	for _, f := range msg.Files {
		if containsPattern(pattern, f.Name) || containsPattern(pattern, f.PlainText) {
			return true
		}
	}
	return false
}

// valuesByPath extracts the field values a dotted path refers to. The
// special path attachments.title.alarm_name yields just the alarm-name
// portion of each title, following the alarm-opening grammar, so rules can
// target the logical name rather than the full text. Unknown paths yield
// nothing.
func valuesByPath(path string, msg *alarms.Message) []string {
	if path == "text" {
		return []string{msg.Text}
	}
	if path == "attachments.title.alarm_name" {
		var values []string
		for _, att := range msg.Attachments {
			if _, name, _, ok := alarms.ParseOpeningLine(att.Title); ok {
				values = append(values, name)
			}
		}
		return values
	}

	kind, field, ok := strings.Cut(path, ".")
	if !ok || strings.Contains(field, ".") {
		return nil
	}

	var values []string
	switch kind {
	case "attachments":
		for _, att := range msg.Attachments {
			switch field {
			case "title":
				values = append(values, att.Title)
			case "fallback":
				values = append(values, att.Fallback)
			case "text":
				values = append(values, att.Text)
			}
		}
	case "files":
		for _, f := range msg.Files {
			switch field {
			case "name":
				values = append(values, f.Name)
			case "plain_text":
				values = append(values, f.PlainText)
			case "id":
				values = append(values, f.ID)
			}
		}
	}
	return values
}

// containsPattern is a case-insensitive substring check. Empty pattern or
// empty text never match.
func containsPattern(pattern, text string) bool {
	if pattern == "" || text == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(pattern))
}
