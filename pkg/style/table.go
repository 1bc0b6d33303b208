package style

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
)

// RenderTable lays rows out under header, without borders, fitting width.
func RenderTable(header []string, rows [][]string, width int) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	if width > 0 && len(header) > 0 {
		table.SetColWidth(width / len(header))
	}
	table.AppendBulk(rows)
	table.Render()

	return buf.String()
}
