package richtext

import (
	"strings"
	"unicode/utf8"
)

func parseTable(table *Node) [][]string {
	grid := make([][]string, 0, len(table.Content))
	for _, row := range table.Content {
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, 0, len(row.Content))
		for _, cell := range row.Content {
			cells = append(cells, extractText(cell))
		}
		grid = append(grid, cells)
	}
	return grid
}

// formatTextTable renders grid as fixed-width columns separated by " | ",
// with a dashed rule under every row but the last. Short rows are padded
// with empty cells. Widths count runes.
func formatTextTable(grid [][]string) string {
	cols := 0
	for _, row := range grid {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if len(grid) == 0 || cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for _, row := range grid {
		for i, cell := range row {
			if w := utf8.RuneCountInString(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	rules := make([]string, cols)
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}
	rule := strings.Join(rules, "-+-")

	var b strings.Builder
	padded := make([]string, cols)
	for r, row := range grid {
		for i := range padded {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			padded[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
		}
		b.WriteString(strings.Join(padded, " | "))
		b.WriteString("\n")
		if r < len(grid)-1 {
			b.WriteString(rule)
			b.WriteString("\n")
		}
	}
	return b.String()
}
