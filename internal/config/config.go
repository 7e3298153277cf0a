// =============================================================================
// EVE Parser - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file.
//
// CONFIGURATION FILE (config.yaml):
//
//   log_level: info
//   log_file: ""
//   input:
//     xlsx_sheet: ""
//     max_line_bytes: 1048576
//   output:
//     format: text          # text, xml or xlsx
//     sort: input           # input, name or total
//     dir: ""               # write a report file here instead of stdout
//     file_name_format: "totals_{timestamp}_{uuid}.{ext}"
//     xlsx_sheet: Totals
//     skip_zero: false
//
// Every key is optional. A missing config file at the default location
// yields the defaults; an explicitly named file must exist.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file used when --config is not given.
const DefaultPath = "config.yaml"

// Sentinel errors for invalid settings.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrUnknownSort   = errors.New("unknown sort order")
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// MainConfig holds the application configuration.
type MainConfig struct {
	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// LogFile is an optional file that receives log output instead of stderr.
	LogFile string `yaml:"log_file"`

	// Input contains settings for reading pasted text.
	Input InputSettings `yaml:"input"`

	// Output contains settings for rendering totals.
	Output OutputSettings `yaml:"output"`
}

// InputSettings contains settings for line sources.
type InputSettings struct {
	// XLSXSheet is the worksheet read from .xlsx inputs.
	// Default: "" (the first sheet)
	XLSXSheet string `yaml:"xlsx_sheet"`

	// CSVDelimiter separates fields in .csv inputs. Accepts a single
	// character or "tab", "pipe", "semicolon".
	// Default: ","
	CSVDelimiter string `yaml:"csv_delimiter"`

	// MaxLineBytes is the longest accepted input line.
	// Default: 1048576
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// OutputSettings contains settings for the totals report.
type OutputSettings struct {
	// Format is the report format: "text", "xml" or "xlsx".
	// Default: "text"
	Format string `yaml:"format"`

	// Sort is the listing order: "input", "name" or "total".
	// Default: "input"
	Sort string `yaml:"sort"`

	// Dir is the directory reports are written to. When empty, text and XML
	// reports go to standard output.
	Dir string `yaml:"dir"`

	// FileNameFormat names report files.
	// Placeholders: {uuid}, {timestamp}, {date}, {time}, {ext}
	// Default: "totals_{timestamp}_{uuid}.{ext}"
	FileNameFormat string `yaml:"file_name_format"`

	// XLSXSheet is the sheet name used for spreadsheet reports.
	// Default: "Totals"
	XLSXSheet string `yaml:"xlsx_sheet"`

	// SkipZero leaves items whose total is zero out of the report.
	SkipZero bool `yaml:"skip_zero"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: Whether a missing file is an error. When false, a missing
//     file yields Default().
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string, required bool) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates configuration YAML.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}
	if config.Input.CSVDelimiter == "" {
		config.Input.CSVDelimiter = ","
	}
	if config.Input.MaxLineBytes == 0 {
		config.Input.MaxLineBytes = 1024 * 1024
	}
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}
	if config.Output.Sort == "" {
		config.Output.Sort = "input"
	}
	if config.Output.FileNameFormat == "" {
		config.Output.FileNameFormat = "totals_{timestamp}_{uuid}.{ext}"
	}
	if config.Output.XLSXSheet == "" {
		config.Output.XLSXSheet = "Totals"
	}
}

// validateMainConfig checks settings that have a fixed set of values.
func validateMainConfig(config *MainConfig) error {
	if err := ValidateFormat(config.Output.Format); err != nil {
		return err
	}
	if err := ValidateSort(config.Output.Sort); err != nil {
		return err
	}
	if config.Input.MaxLineBytes < 0 {
		return fmt.Errorf("max_line_bytes must not be negative, got %d", config.Input.MaxLineBytes)
	}
	return nil
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "text", "xml", "xlsx":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ValidateSort checks a sort order name.
func ValidateSort(order string) error {
	switch order {
	case "input", "name", "total":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownSort, order)
}
