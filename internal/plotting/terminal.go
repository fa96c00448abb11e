package plotting

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteAUCTerminal prints a horizontal bar chart of AUC per synthetic dataset
// to w, sorted ascending. AUC is bounded by [0, 1], so bars are drawn on a
// fixed scale rather than normalized to the observed range.
func WriteAUCTerminal(w io.Writer, names []string, aucs []float64) {
	if len(names) != len(aucs) || len(names) == 0 {
		return
	}

	type entry struct {
		Name string
		AUC  float64
	}
	entries := make([]entry, len(names))
	for i := range names {
		entries[i] = entry{Name: names[i], AUC: aucs[i]}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AUC < entries[j].AUC
	})

	nameWidth := len("Dataset")
	for _, e := range entries {
		if len(e.Name) > nameWidth {
			nameWidth = len(e.Name)
		}
	}

	maxBarWidth := 50
	fmt.Fprintf(w, "\nMembership Inference AUC (ascending):\n")
	fmt.Fprintf(w, "%-*s | AUC    | Bar Chart\n", nameWidth, "Dataset")
	fmt.Fprintf(w, "%s-|--------|%s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", maxBarWidth))

	for _, e := range entries {
		barWidth := int(e.AUC * float64(maxBarWidth))
		if barWidth > maxBarWidth {
			barWidth = maxBarWidth
		}
		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}
		fmt.Fprintf(w, "%-*s | %.4f | %s\n", nameWidth, e.Name, e.AUC, bar)
	}
	fmt.Fprintf(w, "\nScale: 0.5 = indistinguishable, 1.0 = fully distinguishable\n")
}
