// File: pkg/formatter/table.go
package formatter

import "strings"

// Table renders rows in the bordered ASCII style the CLI uses everywhere.
type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

func (t *Table) AddRow(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Returns the string representation of the table
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	border := borderLine(widths)

	var sb strings.Builder
	sb.WriteString(border)
	sb.WriteString("\n")
	sb.WriteString(renderRow(t.headers, widths))
	sb.WriteString("\n")
	sb.WriteString(border)
	sb.WriteString("\n")
	for _, row := range t.rows {
		sb.WriteString(renderRow(row, widths))
		sb.WriteString("\n")
	}
	sb.WriteString(border)

	return sb.String()
}

func renderRow(cells []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", width-len(cell)))
		sb.WriteString(" |")
	}
	return sb.String()
}

func borderLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	return sb.String()
}
