// Package gel renders digest results as a plain-text agarose gel: one lane
// per digest next to a size ladder, band migration log-scaled the way DNA
// actually runs.
package gel

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"cloneplan/internal/digest"
)

// ladder is a standard 1kb-ish ladder, in bp
var ladder = []int{10000, 5000, 3000, 2000, 1500, 1000, 700, 500, 300, 100}

// Lane is one gel lane: a label and the band sizes loaded into it.
type Lane struct {
	Name    string
	Lengths []int
}

const rows = 24

// Render writes an ASCII gel: the ladder lane, then each sample lane.
func Render(w io.Writer, lanes []Lane) {
	all := append([]Lane{{Name: "ladder", Lengths: ladder}}, lanes...)

	maxBP, minBP := 0, math.MaxInt
	for _, lane := range all {
		for _, ln := range lane.Lengths {
			if ln > maxBP {
				maxBP = ln
			}
			if ln > 0 && ln < minBP {
				minBP = ln
			}
		}
	}
	if maxBP == 0 || minBP == math.MaxInt {
		fmt.Fprintln(w, "(no bands)")
		return
	}
	if minBP == maxBP {
		minBP = maxBP / 2
		if minBP == 0 {
			minBP = 1
		}
	}

	// smaller fragments migrate further: row = scaled -log(bp)
	rowFor := func(bp int) int {
		f := (math.Log(float64(maxBP)) - math.Log(float64(bp))) /
			(math.Log(float64(maxBP)) - math.Log(float64(minBP)))
		r := int(math.Round(f * float64(rows-1)))
		if r < 0 {
			r = 0
		}
		if r >= rows {
			r = rows - 1
		}
		return r
	}

	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, len(all))
		for c := range grid[r] {
			grid[r][c] = strings.Repeat(" ", 6)
		}
	}
	for c, lane := range all {
		for _, bp := range lane.Lengths {
			if bp > 0 {
				grid[rowFor(bp)][c] = "======"
			}
		}
	}

	// header
	for _, lane := range all {
		fmt.Fprintf(w, " %-6s", truncate(lane.Name, 6))
	}
	fmt.Fprintln(w)

	for r := 0; r < rows; r++ {
		for c := range all {
			fmt.Fprintf(w, " %s", grid[r][c])
		}

		// annotate ladder rows with their size
		label := ""
		for _, bp := range ladder {
			if rowFor(bp) == r {
				label = fmt.Sprintf("  %d bp", bp)
				break
			}
		}
		fmt.Fprintln(w, label)
	}
}

// Table writes the fragment details next to the gel: spans, lengths and
// end annotations.
func Table(w io.Writer, frags []digest.Fragment) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)
	fmt.Fprintln(tw, "#\tstart\tend\tlength\tleft end\tright end")
	for i, f := range frags {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\n", i+1, f.Start, f.End, f.Length, endLabel(f.LeftEnd), endLabel(f.RightEnd))
	}
	tw.Flush()
}

func endLabel(e digest.End) string {
	if e.Enzyme == "" {
		return "natural"
	}
	if e.Len == 0 {
		return fmt.Sprintf("%s (blunt)", e.Enzyme)
	}
	return fmt.Sprintf("%s (%s %s)", e.Enzyme, e.Type, e.Seq)
}

// SortedLengths is a convenience for building lanes out of digests.
func SortedLengths(frags []digest.Fragment) []int {
	lengths := make([]int, 0, len(frags))
	for _, f := range frags {
		lengths = append(lengths, f.Length)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	return lengths
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
