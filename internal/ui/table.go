package ui

import (
	"bytes"

	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// RenderTable formats rows as a table with alternating row colors.
func RenderTable(headers []string, rows [][]string, color bool) (string, error) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
