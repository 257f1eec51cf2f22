package extractor

import (
	"math"
	"sort"
	"strings"
)

// Fragment is one positioned piece of rendered text on a PDF page.
type Fragment struct {
	X, Y float64
	Text string
}

// ReconstructLines regroups positioned text fragments into visually ordered
// lines: top of page first, left to right within a line.
//
// Fragments sharing a baseline belong to one line; rounding the Y coordinate
// to the nearest integer absorbs sub-pixel jitter from font rendering. Groups
// are emitted by descending Y because page coordinate systems run bottom-up.
// Two genuinely distinct lines that round to the same integer Y merge, an
// accepted limitation of the heuristic.
func ReconstructLines(fragments []Fragment) []string {
	rows := make(map[int][]Fragment)
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) == "" {
			continue
		}
		yKey := int(math.Round(f.Y))
		rows[yKey] = append(rows[yKey], f)
	}

	yKeys := make([]int, 0, len(rows))
	for y := range rows {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		row := rows[y]
		sort.Slice(row, func(a, b int) bool {
			return row[a].X < row[b].X
		})

		parts := make([]string, 0, len(row))
		for _, f := range row {
			parts = append(parts, f.Text)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
