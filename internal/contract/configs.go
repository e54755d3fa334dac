package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/lifespan/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // 0 shows every surviving event
	MaxResultLimit     = 100000
	DefaultPrecision   = 3
	MaxPrecision       = 6
)

// ValidPlotFileExtensions lists image formats the scatter plot can be saved as.
var ValidPlotFileExtensions = map[string]struct{}{
	".png":  {},
	".svg":  {},
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	Encoding    schema.Encoding
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Plot        schema.PlotMode
	PlotFile    string
	Width       int // Terminal width override (0 = auto-detect)
	Debug       bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Debug          bool   `mapstructure:"debug"`
	Color          string `mapstructure:"color"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Encoding string `mapstructure:"encoding"`
	Limit    int    `mapstructure:"limit"`
	Plot     string `mapstructure:"plot"`
	PlotFile string `mapstructure:"plot-file"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateOutputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseDatabaseBackend(input.CacheBackend)
	if err != nil {
		return err
	}
	cfg.CacheBackend = backend
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ParseDatabaseBackend normalizes a cache backend name. Empty means none.
func ParseDatabaseBackend(raw string) (schema.DatabaseBackend, error) {
	backend := strings.TrimSpace(raw)
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	parsed := schema.DatabaseBackend(strings.ToLower(backend))
	if _, ok := schema.ValidDatabaseBackends[parsed]; !ok {
		return "", fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return parsed, nil
}

// validateSimpleInputs processes and validates all non-output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	cfg.Width = input.Width
	cfg.Debug = input.Debug

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Encoding Validation ---
	encoding := input.Encoding
	if encoding == "" {
		encoding = string(schema.AutoEncoding)
	}
	cfg.Encoding = schema.Encoding(strings.ToLower(encoding))
	if _, ok := schema.ValidEncodings[cfg.Encoding]; !ok {
		return fmt.Errorf("invalid encoding '%s'. must be auto, latin1, utf8", input.Encoding)
	}

	// --- 3. Precision Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision
	return nil
}

// validateOutputs validates the report format, destination and plot options.
func validateOutputs(cfg *Config, input *ConfigRawInput) error {
	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	plot := input.Plot
	if plot == "" {
		plot = string(schema.TextPlot)
	}
	cfg.Plot = schema.PlotMode(strings.ToLower(plot))
	if _, ok := schema.ValidPlotModes[cfg.Plot]; !ok {
		return fmt.Errorf("invalid plot mode '%s'. must be text, none", input.Plot)
	}

	cfg.PlotFile = strings.TrimSpace(input.PlotFile)
	if cfg.PlotFile != "" {
		ext := strings.ToLower(filepath.Ext(cfg.PlotFile))
		if _, ok := ValidPlotFileExtensions[ext]; !ok {
			return fmt.Errorf("unsupported plot file extension '%s'. must be .png, .svg, .pdf, .jpg, .jpeg", ext)
		}
	}
	return nil
}
