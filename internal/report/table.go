package report

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var tableHeader = []string{"file_name", "duplicates", "size", "count"}

// RenderTable draws entries as an ASCII box table. Each duplicate path is put
// on its own line inside the duplicates cell.
func RenderTable(entries []Entry) string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, tableHeader)
	for _, e := range entries {
		rows = append(rows, []string{
			e.DisplayName,
			strings.Join(e.DuplicatePaths, "\n"),
			e.SizeLabel,
			strconv.Itoa(e.Count),
		})
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			for _, line := range strings.Split(cell, "\n") {
				if w := utf8.RuneCountInString(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var border strings.Builder
	border.WriteString("+")
	for _, w := range widths {
		border.WriteString(strings.Repeat("-", w+2))
		border.WriteString("+")
	}
	border.WriteString("\n")

	var sb strings.Builder
	sb.WriteString(border.String())
	for _, row := range rows {
		writeRow(&sb, row, widths)
		sb.WriteString(border.String())
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	cells := make([][]string, len(row))
	height := 1
	for i, cell := range row {
		cells[i] = strings.Split(cell, "\n")
		if len(cells[i]) > height {
			height = len(cells[i])
		}
	}

	for line := 0; line < height; line++ {
		sb.WriteString("|")
		for i, lines := range cells {
			text := ""
			if line < len(lines) {
				text = lines[line]
			}
			sb.WriteString(" ")
			sb.WriteString(text)
			sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(text)))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
}
