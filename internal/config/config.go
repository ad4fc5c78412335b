package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"metascan/internal/domain"
)

const DefaultReportName = "metadata_report.log"

type Config struct {
	Root      string
	Output    string
	RulesFile string
	Workers   int
	Verbose   bool
	Plain     bool

	rules domain.IgnoreRules
}

// rulesFile is the optional YAML document extending the built-in ignore lists.
type rulesFile struct {
	IgnoreDirs  []string `yaml:"ignore_dirs"`
	IgnoreFiles []string `yaml:"ignore_files"`
	SkipHidden  *bool    `yaml:"skip_hidden"`
}

func Default() Config {
	return Config{
		Root:  ".",
		rules: domain.DefaultIgnoreRules(),
	}
}

// Resolve applies environment overrides, loads the rules file if one is
// configured, and validates the result. Flag values already set on the
// config take precedence over the environment.
func (c Config) Resolve() (Config, error) {
	if c.Output == "" {
		c.Output = envOrEmpty("METASCAN_OUTPUT")
	}
	if c.RulesFile == "" {
		c.RulesFile = envOrEmpty("METASCAN_RULES")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("METASCAN_VERBOSE")
	}
	if !c.Plain {
		c.Plain = envTruthy("METASCAN_PLAIN")
	}

	if c.Root == "" {
		c.Root = "."
	}
	if c.Output == "" {
		c.Output = DefaultReportName
	}
	if c.Workers < 0 {
		return Config{}, errors.New("workers must be zero or positive")
	}

	c.rules = domain.DefaultIgnoreRules()
	if c.RulesFile != "" {
		loaded, err := loadRulesFile(c.RulesFile, c.rules)
		if err != nil {
			return Config{}, err
		}
		c.rules = loaded
	}

	return c, nil
}

// Rules returns the immutable ignore rules for this scan.
func (c Config) Rules() domain.IgnoreRules {
	return c.rules
}

func loadRulesFile(path string, base domain.IgnoreRules) (domain.IgnoreRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IgnoreRules{}, err
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return domain.IgnoreRules{}, err
	}

	rules := base.Extend(rf.IgnoreDirs, rf.IgnoreFiles)
	if rf.SkipHidden != nil {
		rules.SkipHidden = *rf.SkipHidden
	}
	return rules, nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
