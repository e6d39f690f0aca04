package grover

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	dotGlyph       = "●"
	benchmarkGlyph = "┊"
)

/*
PlotAccuracy prints the accuracy mapping followed by a horizontal dot plot,
one row per register size. The right edge of the axis is the 100% benchmark.
Colour is applied only when w is a terminal.
*/
func PlotAccuracy(w io.Writer, points []Point, width int) error {
	if width < 10 {
		return invalidInput("plot width %d is below 10", width)
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Qubits < sorted[j].Qubits
	})

	renderer := lipgloss.NewRenderer(w)
	dot := renderer.NewStyle().Foreground(lipgloss.Color("12"))
	benchmark := renderer.NewStyle().Foreground(lipgloss.Color("9"))
	title := renderer.NewStyle().Bold(true)

	var b strings.Builder

	b.WriteString("Mapping:\n")
	for _, p := range sorted {
		fmt.Fprintf(&b, "%d Qubits: %.5f\n", p.Qubits, p.Accuracy)
	}

	if len(sorted) > 0 {
		lo := axisFloor(sorted)

		b.WriteString("\n")
		b.WriteString(title.Render("Accuracy Comparison (Dot Plot)"))
		b.WriteString("\n")

		for _, p := range sorted {
			col := column(p.Accuracy, lo, width)

			fmt.Fprintf(&b, "%3d │", p.Qubits)
			b.WriteString(strings.Repeat(" ", col))

			if col == width-1 {
				b.WriteString(dot.Render(dotGlyph))
			} else {
				b.WriteString(dot.Render(dotGlyph))
				b.WriteString(strings.Repeat(" ", width-col-2))
				b.WriteString(benchmark.Render(benchmarkGlyph))
			}

			fmt.Fprintf(&b, " %.5f\n", p.Accuracy)
		}

		fmt.Fprintf(&b, "    └%s\n", strings.Repeat("─", width))
		fmt.Fprintf(&b, "     %-*.2f%*s\n", width/2, lo, width-width/2, "100% benchmark")
		b.WriteString("     Accuracy (%)\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// axisFloor picks a left edge just below the worst accuracy.
func axisFloor(points []Point) float64 {
	lo := 100.0
	for _, p := range points {
		lo = math.Min(lo, p.Accuracy)
	}

	if lo >= 100 {
		return 99
	}

	return math.Max(0, lo-(100-lo)*0.05)
}

func column(value, lo float64, width int) int {
	frac := (value - lo) / (100 - lo)
	frac = math.Max(0, math.Min(1, frac))
	return int(math.Round(frac * float64(width-1)))
}
