package outwriter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/lifespan/core/algo"
	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/schema"
)

// Labels shared by the terminal plot and the image plot.
const (
	PlotTitle  = "Attention Regimes: Shock vs Persistent"
	PlotXLabel = "Peak Attention"
	PlotYLabel = "Total Attention (AUC)"
)

const plotHeight = 16

// Terminal glyphs per regime. overlapGlyph marks a cell shared by both regimes.
const (
	shockGlyph      = 'o'
	persistentGlyph = '+'
	overlapGlyph    = '*'
)

func regimeGlyph(regime schema.Regime) rune {
	if regime == schema.PersistentRegime {
		return persistentGlyph
	}
	return shockGlyph
}

// plotCell is one character of the drawing area.
type plotCell struct {
	glyph  rune
	regime schema.Regime
}

// renderScatter draws peak (x) against total attention (y) as a character
// grid of the given size, one glyph per event.
func renderScatter(records []schema.MetricsRecord, width, height int, useColors bool) string {
	var sb strings.Builder
	sb.WriteString(centered(PlotTitle, width+2) + "\n")
	if len(records) == 0 {
		sb.WriteString("(no events to plot)\n")
		return sb.String()
	}

	xLo, xHi := algo.PeakRange(records)
	yLo, yHi := algo.AttentionRange(records)

	grid := make([][]plotCell, height)
	for i := range grid {
		grid[i] = make([]plotCell, width)
	}
	for _, regime := range schema.AllRegimes {
		for _, m := range records {
			if m.Regime != regime {
				continue
			}
			col := scaleToCell(m.Peak, xLo, xHi, width)
			row := height - 1 - scaleToCell(m.TotalAttention, yLo, yHi, height)
			cell := &grid[row][col]
			switch {
			case cell.glyph == 0:
				cell.glyph = regimeGlyph(regime)
				cell.regime = regime
			case cell.regime != regime:
				cell.glyph = overlapGlyph
			}
		}
	}

	yTop, yBottom := axisNumber(yHi), axisNumber(yLo)
	margin := max(len(yTop), len(yBottom))

	sb.WriteString(strings.Repeat(" ", margin) + " " + PlotYLabel + "\n")
	for i, line := range grid {
		label := ""
		switch i {
		case 0:
			label = yTop
		case height - 1:
			label = yBottom
		}
		sb.WriteString(fmt.Sprintf("%*s |", margin, label))
		for _, cell := range line {
			sb.WriteString(paintCell(cell, useColors))
		}
		sb.WriteString("\n")
	}

	pad := strings.Repeat(" ", margin)
	sb.WriteString(pad + " +" + strings.Repeat("-", width) + "\n")
	xLeft, xRight := axisNumber(xLo), axisNumber(xHi)
	gap := max(width-len(xLeft)-len(xRight), 1)
	sb.WriteString(pad + "  " + xLeft + strings.Repeat(" ", gap) + xRight + "\n")
	sb.WriteString(pad + "  " + centered(PlotXLabel, width) + "\n")

	sb.WriteString(pad + "  " + legend(useColors) + "\n")
	return sb.String()
}

// scaleToCell maps v from [lo, hi] onto a cell index in [0, n). A degenerate
// range puts every value in the middle.
func scaleToCell(v, lo, hi float64, n int) int {
	if hi <= lo {
		return (n - 1) / 2
	}
	idx := int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
	return min(max(idx, 0), n-1)
}

func paintCell(cell plotCell, useColors bool) string {
	if cell.glyph == 0 {
		return " "
	}
	s := string(cell.glyph)
	if useColors && cell.glyph != overlapGlyph {
		return contract.RegimeColor(cell.regime).Sprint(s)
	}
	return s
}

func legend(useColors bool) string {
	parts := make([]string, 0, len(schema.AllRegimes)+1)
	for _, regime := range schema.AllRegimes {
		glyph := string(regimeGlyph(regime))
		if useColors {
			glyph = contract.RegimeColor(regime).Sprint(glyph)
		}
		parts = append(parts, glyph+" "+string(regime))
	}
	parts = append(parts, string(overlapGlyph)+" both")
	return "Legend: " + strings.Join(parts, "  ")
}

func axisNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func centered(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}
