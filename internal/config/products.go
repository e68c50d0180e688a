package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/alarmscope/alarmscope/internal/rules"
)

// EnvironmentConfig describes one environment of a product.
type EnvironmentConfig struct {
	Name           string
	SlackChannelID string
}

// OncallConfig identifies the on-call channel and the pattern marking
// on-call alarms.
type OncallConfig struct {
	SlackChannelID string
	Pattern        string
}

// ProductConfig is the parsed, validated configuration for one product.
// It is built once at load time and treated as read-only afterwards.
type ProductConfig struct {
	Name         string
	Environments map[string]EnvironmentConfig
	IgnoreRules  []rules.IgnoreRule
	Oncall       *OncallConfig
}

// SlackChannelID returns the channel for an environment, "" when unknown.
func (p *ProductConfig) SlackChannelID(env string) string {
	return p.Environments[env].SlackChannelID
}

// EnvironmentNames returns the configured environment names.
func (p *ProductConfig) EnvironmentNames() []string {
	names := make([]string, 0, len(p.Environments))
	for name := range p.Environments {
		names = append(names, name)
	}
	return names
}

// Raw YAML shapes. Weekdays decode as any: the file may list either numbers
// (0=Monday) or names ("saturday").
type rawConfig struct {
	Products map[string]rawProduct `yaml:"products"`
}

type rawProduct struct {
	Envs   map[string]rawEnvironment `yaml:"envs"`
	Alarms rawAlarms                 `yaml:"alarms"`
	Oncall *rawOncall                `yaml:"oncall"`
}

type rawEnvironment struct {
	SlackChannelID string `yaml:"slack_channel_id"`
}

type rawAlarms struct {
	Ignore []rawIgnoreRule `yaml:"ignore"`
}

type rawIgnoreRule struct {
	Name         string             `yaml:"name"`
	Path         string             `yaml:"path"`
	Environments []string           `yaml:"environments"`
	Reason       string             `yaml:"reason"`
	Validity     *rawTimeConstraint `yaml:"validity"`
	Exclusions   *rawTimeConstraint `yaml:"exclusions"`
}

type rawTimeConstraint struct {
	Periods  []rawPeriod    `yaml:"periods"`
	Weekdays []any          `yaml:"weekdays"`
	Hours    []rawHourRange `yaml:"hours"`
}

type rawPeriod struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type rawHourRange struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type rawOncall struct {
	SlackChannelID string `yaml:"slack_channel_id"`
	Pattern        string `yaml:"pattern"`
}

// LoadProducts reads and validates the products YAML file. Any malformed rule
// (bad path, bad time constraint, empty pattern) fails the whole load: a rule
// set with broken rules must never reach event processing.
func LoadProducts(path string) (map[string]*ProductConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if len(raw.Products) == 0 {
		return nil, fmt.Errorf("config %s must contain a products section", path)
	}

	products := make(map[string]*ProductConfig, len(raw.Products))
	for name, rp := range raw.Products {
		p, err := buildProduct(name, rp)
		if err != nil {
			return nil, err
		}
		products[name] = p
	}
	return products, nil
}

func buildProduct(name string, rp rawProduct) (*ProductConfig, error) {
	if len(rp.Envs) == 0 {
		return nil, fmt.Errorf("product %s: no environments defined", name)
	}

	envs := make(map[string]EnvironmentConfig, len(rp.Envs))
	for envName, re := range rp.Envs {
		if re.SlackChannelID == "" {
			return nil, fmt.Errorf("product %s, environment %s: empty slack_channel_id", name, envName)
		}
		envs[envName] = EnvironmentConfig{Name: envName, SlackChannelID: re.SlackChannelID}
	}

	ruleList := make([]rules.IgnoreRule, 0, len(rp.Alarms.Ignore))
	for i, rr := range rp.Alarms.Ignore {
		rule, err := buildIgnoreRule(rr)
		if err != nil {
			return nil, fmt.Errorf("product %s, ignore rule %d: %w", name, i+1, err)
		}
		ruleList = append(ruleList, rule)
	}
	if len(ruleList) == 0 {
		ruleList = rules.DefaultRules()
	}

	var oncall *OncallConfig
	if rp.Oncall != nil {
		if rp.Oncall.Pattern == "" {
			return nil, fmt.Errorf("product %s: oncall block has empty pattern", name)
		}
		if _, err := regexp.Compile("(?i)" + rp.Oncall.Pattern); err != nil {
			return nil, fmt.Errorf("product %s: invalid oncall pattern %q: %w", name, rp.Oncall.Pattern, err)
		}
		oncall = &OncallConfig{
			SlackChannelID: rp.Oncall.SlackChannelID,
			Pattern:        rp.Oncall.Pattern,
		}
	}

	return &ProductConfig{
		Name:         name,
		Environments: envs,
		IgnoreRules:  ruleList,
		Oncall:       oncall,
	}, nil
}

func buildIgnoreRule(rr rawIgnoreRule) (rules.IgnoreRule, error) {
	if rr.Name == "" {
		return rules.IgnoreRule{}, fmt.Errorf("empty pattern")
	}
	path := rr.Path
	if path == "" {
		path = "*"
	}
	if !rules.ValidRulePath(path) {
		return rules.IgnoreRule{}, fmt.Errorf("unknown field path %q", path)
	}

	validity, err := buildTimeConstraint(rr.Validity)
	if err != nil {
		return rules.IgnoreRule{}, fmt.Errorf("validity: %w", err)
	}
	exclusions, err := buildTimeConstraint(rr.Exclusions)
	if err != nil {
		return rules.IgnoreRule{}, fmt.Errorf("exclusions: %w", err)
	}

	return rules.IgnoreRule{
		Pattern:      rr.Name,
		Path:         path,
		Environments: rr.Environments,
		Reason:       rr.Reason,
		Validity:     validity,
		Exclusions:   exclusions,
	}, nil
}

func buildTimeConstraint(rc *rawTimeConstraint) (rules.TimeConstraint, error) {
	if rc == nil {
		return rules.TimeConstraint{}, nil
	}

	var periods []rules.DateTimePeriod
	for _, rp := range rc.Periods {
		p, err := rules.NewDateTimePeriod(rp.Start, rp.End)
		if err != nil {
			return rules.TimeConstraint{}, err
		}
		periods = append(periods, p)
	}

	var weekdays []int
	for _, w := range rc.Weekdays {
		day, err := rules.ParseWeekday(fmt.Sprintf("%v", w))
		if err != nil {
			return rules.TimeConstraint{}, err
		}
		weekdays = append(weekdays, day)
	}

	var hours []rules.TimeRange
	for _, rh := range rc.Hours {
		h, err := rules.NewTimeRange(rh.Start, rh.End)
		if err != nil {
			return rules.TimeConstraint{}, err
		}
		hours = append(hours, h)
	}

	return rules.NewTimeConstraint(periods, weekdays, hours)
}
