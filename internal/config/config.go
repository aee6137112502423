package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the duplicate scanner configuration
type Config struct {
	// Scan settings
	Root       string   `mapstructure:"root"`        // directory to scan
	Workers    int      `mapstructure:"workers"`     // concurrent traversal/clustering goroutines
	Exclude    []string `mapstructure:"exclude"`     // directory names to skip
	HashBuffer string   `mapstructure:"hash_buffer"` // read buffer for hashing (e.g. "64K")

	// Matching settings
	ScoreThreshold int    `mapstructure:"score_threshold"` // inclusive lower bound for the name score
	UseHash        bool   `mapstructure:"use_hash"`        // compare SHA-256 content digests
	MatchSize      bool   `mapstructure:"match_size"`      // without hashing, require equal sizes
	ExactNames     bool   `mapstructure:"exact_names"`     // exact (case-insensitive) names instead of fuzzy scoring
	DigestCase     string `mapstructure:"digest_case"`     // upper, lower

	// Report settings
	ReportFormat     string `mapstructure:"report_format"`      // "", text, json, yaml, md, html, sqlite
	OutputFile       string `mapstructure:"output_file"`        // output file path
	ConsoleFile      string `mapstructure:"console_file"`       // file receiving the console table ("" disables)
	LegacySizeLabels bool   `mapstructure:"legacy_size_labels"` // reproduce the historical size labels
	NoColor          bool   `mapstructure:"no_color"`           // disable ANSI colors on the console
}

// DigestCase values
const (
	DigestUpper = "upper"
	DigestLower = "lower"
)

// ReportFormats lists accepted report formats; the empty string means console output
var ReportFormats = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown", "html", "sqlite"}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables (DUPHOUND_*)
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("root", "")
	v.SetDefault("workers", runtime.NumCPU()*2)
	v.SetDefault("exclude", []string{})
	v.SetDefault("hash_buffer", "64K")
	v.SetDefault("score_threshold", 90)
	v.SetDefault("use_hash", true)
	v.SetDefault("match_size", false)
	v.SetDefault("exact_names", false)
	v.SetDefault("digest_case", DigestUpper)
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("console_file", "duplicate.txt")
	v.SetDefault("legacy_size_labels", false)
	v.SetDefault("no_color", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("DUPHOUND")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that the scanner cannot recover from
func (c *Config) Validate() error {
	if c.ScoreThreshold < 0 {
		return fmt.Errorf("score_threshold must not be negative (got: %d)", c.ScoreThreshold)
	}

	switch strings.ToLower(c.DigestCase) {
	case DigestUpper, DigestLower:
	default:
		return fmt.Errorf("digest_case must be one of: %s, %s (got: %s)", DigestUpper, DigestLower, c.DigestCase)
	}

	if c.ReportFormat != "" && !contains(ReportFormats, c.ReportFormat) {
		return fmt.Errorf("report_format must be one of: %s (got: %s)", strings.Join(ReportFormats, ", "), c.ReportFormat)
	}

	if c.HashBuffer != "" && ParseSize(c.HashBuffer) <= 0 {
		return fmt.Errorf("hash_buffer must be a positive size such as 64K (got: %s)", c.HashBuffer)
	}

	return nil
}

// GetWorkers returns the configured worker count, falling back to CPU cores * 2
func (c *Config) GetWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU() * 2
}

// LowerDigest reports whether digests are hex-encoded in lowercase
func (c *Config) LowerDigest() bool {
	return strings.EqualFold(c.DigestCase, DigestLower)
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// HashBufferBytes returns the hash buffer size in bytes (0 when unset)
func (c *Config) HashBufferBytes() int {
	return int(ParseSize(c.HashBuffer))
}

// ParseSize parses size string (e.g., "64K", "1M") to bytes
func ParseSize(sizeStr string) int64 {
	if len(sizeStr) == 0 {
		return 0
	}

	// Get last character (unit)
	last := sizeStr[len(sizeStr)-1]
	var multiplier int64 = 1

	switch last {
	case 'K', 'k':
		multiplier = 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		sizeStr = sizeStr[:len(sizeStr)-1]
	}

	// Parse number
	var size int64
	fmt.Sscanf(sizeStr, "%d", &size)

	return size * multiplier
}
