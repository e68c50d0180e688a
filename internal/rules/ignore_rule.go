package rules

import (
	"fmt"
	"strings"
)

// envPlaceholder in a rule pattern is substituted with the environment the
// rule is being evaluated against.
const envPlaceholder = "[#env#]"

// IgnoreRule removes matching alarms from the analyzable statistics.
// Pattern is a case-insensitive substring; Path scopes the search to one
// field ("*" means all fields); Environments scopes the rule (empty = all);
// Validity narrows when the rule is active and Exclusions when it is not.
type IgnoreRule struct {
	Pattern      string
	Path         string
	Environments []string
	Reason       string
	Validity     TimeConstraint
	Exclusions   TimeConstraint
}

// AppliesToEnvironment reports whether the rule is in scope for env.
// A rule with no environment list applies everywhere.
func (r IgnoreRule) AppliesToEnvironment(env string) bool {
	if len(r.Environments) == 0 {
		return true
	}
	for _, e := range r.Environments {
		if e == env {
			return true
		}
	}
	return false
}

// ExpandedPattern returns the pattern with the environment placeholder
// substituted.
func (r IgnoreRule) ExpandedPattern(env string) string {
	if env == "" {
		return r.Pattern
	}
	return strings.ReplaceAll(r.Pattern, envPlaceholder, env)
}

// Equal reports structural equality.
func (r IgnoreRule) Equal(other IgnoreRule) bool {
	if r.Pattern != other.Pattern || r.Path != other.Path || r.Reason != other.Reason {
		return false
	}
	if len(r.Environments) != len(other.Environments) {
		return false
	}
	for i, e := range r.Environments {
		if e != other.Environments[i] {
			return false
		}
	}
	return r.Validity.Equal(other.Validity) && r.Exclusions.Equal(other.Exclusions)
}

func (r IgnoreRule) String() string {
	if len(r.Environments) > 0 {
		return fmt.Sprintf("IgnoreRule(pattern=%q, path=%q, environments=%v)", r.Pattern, r.Path, r.Environments)
	}
	return fmt.Sprintf("IgnoreRule(pattern=%q, path=%q)", r.Pattern, r.Path)
}

// ValidRulePath reports whether path is part of the supported field-path
// grammar. The engine treats an unknown path as matching nothing; the
// configuration loader rejects it up front.
func ValidRulePath(path string) bool {
	switch path {
	case "*", "text", "attachments.title.alarm_name":
		return true
	case "attachments.title", "attachments.fallback", "attachments.text":
		return true
	case "files.name", "files.plain_text", "files.id":
		return true
	}
	return false
}

// DefaultRules is the named fallback rule set used when a product configures
// no ignore rules of its own.
func DefaultRules() []IgnoreRule {
	return []IgnoreRule{
		{Pattern: "AWS Notification Message", Path: "files.name"},
	}
}
