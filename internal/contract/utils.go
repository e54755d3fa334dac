package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/lifespan/schema"
)

// Color variables for console output. Shock is blue and persistent is red,
// matching the scatter plot.
var (
	ShockColor      = color.New(color.FgBlue, color.Bold)
	PersistentColor = color.New(color.FgRed, color.Bold)
	HeaderColor     = color.New(color.FgCyan, color.Bold)
)

// RegimeColor returns the console color used for a regime.
func RegimeColor(regime schema.Regime) *color.Color {
	if regime == schema.PersistentRegime {
		return PersistentColor
	}
	return ShockColor
}

// GetColorLabel returns a colored regime label for console output (table).
func GetColorLabel(regime schema.Regime) string {
	return RegimeColor(regime).Sprint(string(regime))
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".lifespan_cache.db"
	}
	return filepath.Join(homeDir, ".lifespan_cache.db")
}

// TruncateName truncates an event name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
