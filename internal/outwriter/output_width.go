package outwriter

import (
	"os"

	"github.com/huangsam/lifespan/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override from config, the detected
// terminal width, or 80 when neither is available.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// getMaxTableNameWidth calculates how wide the event column of the metrics
// table may grow before names are truncated.
func getMaxTableNameWidth(cfg *contract.Config) int {
	// Rank + Peak + Half-life + Total + Lambda + Regime with borders/padding
	baseWidth := 70
	available := getTerminalWidth(cfg) - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// getPlotWidth returns the number of columns the terminal scatter plot may use
// for its drawing area.
func getPlotWidth(cfg *contract.Config) int {
	available := getTerminalWidth(cfg) - 16 // y-axis labels and frame
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}
