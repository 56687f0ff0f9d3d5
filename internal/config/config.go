// Package config holds the startup configuration of exam-points.
// Values come from command-line flags; a .env file in the working directory
// may supply logging settings and the roster column mapping path.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"exam-points/internal/logger"
)

const (
	DefaultDelimiter         = ";"
	DefaultOutputFile        = "results.csv"
	DefaultThirdAttemptValue = "3"

	// EnvColumnsFile names the YAML roster column mapping when --columns is not given.
	EnvColumnsFile = "EXAM_POINTS_COLUMNS"
)

// Config holds all startup parameters.
type Config struct {
	// InputFile is the roster exported by the institution (required).
	InputFile string

	// Exercises is the number of exercise columns in the results file (required, >= 1).
	Exercises int

	// Delimiter separates fields in both CSV files (default: ";").
	Delimiter string

	// OutputFile is the results file, created when absent (default: results.csv).
	OutputFile string

	// SoundEnabled rings the terminal bell for third-attempt students (default: on).
	SoundEnabled bool

	// ThirdAttemptValue is the retry flag value marking a third attempt (default: "3").
	ThirdAttemptValue string

	// Fullscreen starts the main window in fullscreen mode (default: on).
	Fullscreen bool

	// ColumnsFile optionally points at a YAML roster column mapping.
	ColumnsFile string

	Columns RosterColumns

	Logging LoggingConfig
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (env: LOG_LEVEL, default: info)
	Level string

	// Format is text or json (env: LOG_FORMAT, default: text)
	Format string
}

// Default returns a Config carrying every default value.
func Default() *Config {
	return &Config{
		Delimiter:         DefaultDelimiter,
		OutputFile:        DefaultOutputFile,
		SoundEnabled:      true,
		ThirdAttemptValue: DefaultThirdAttemptValue,
		Fullscreen:        true,
		Columns:           DefaultRosterColumns(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadEnv reads .env from the working directory if present and applies the
// environment on top of cfg. Flags already set on cfg take precedence for the
// columns file.
func LoadEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = logger.ParseLevel(v).String()
	} else if os.Getenv("DEBUG") == "1" {
		cfg.Logging.Level = logger.DebugLevel.String()
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if cfg.ColumnsFile == "" {
		cfg.ColumnsFile = os.Getenv(EnvColumnsFile)
	}
	return nil
}

// Finalize loads the column mapping file, if any, and validates the result.
func (c *Config) Finalize() error {
	if c.ColumnsFile != "" {
		cols, err := LoadRosterColumns(c.ColumnsFile)
		if err != nil {
			return fmt.Errorf("config load: %w", err)
		}
		c.Columns = cols
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if c.InputFile == "" {
		errs = append(errs, "input file is required")
	}
	if c.Exercises < 1 {
		errs = append(errs, fmt.Sprintf("number of exercises (%d) must be at least 1", c.Exercises))
	}
	if err := c.CheckDelimiter(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.OutputFile == "" {
		errs = append(errs, "output file must not be empty")
	}
	if c.InputFile != "" && c.InputFile == c.OutputFile {
		errs = append(errs, "input and output file must differ")
	}
	if err := c.Columns.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// CheckDelimiter reports whether the delimiter can separate CSV fields.
func (c *Config) CheckDelimiter() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter %q must be a single character", c.Delimiter)
	}
	if r, _ := utf8.DecodeRuneInString(c.Delimiter); r == '"' || r == '\r' || r == '\n' {
		return fmt.Errorf("delimiter %q is not allowed", c.Delimiter)
	}
	return nil
}

// Comma returns the delimiter as the rune encoding/csv expects.
func (c *Config) Comma() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
