// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"
)

func renderTable(b *strings.Builder, layout Layout, c *TableContent) {
	modifier := "plain"
	switch layout {
	case LayoutStriped:
		modifier = "striped"
	case LayoutGrid:
		modifier = "bordered"
	}

	width := len(c.Columns)
	for _, row := range c.Rows {
		width = max(width, len(row))
	}

	fmt.Fprintf(b, `<table class="block-table block-table--%s">`, modifier)
	element(b, "caption", "block-table__caption", c.Caption)
	if len(c.Columns) > 0 {
		b.WriteString(`<thead><tr>`)
		for i := 0; i < width; i++ {
			b.WriteString(`<th scope="col">` + esc(cell(c.Columns, i)) + `</th>`)
		}
		b.WriteString(`</tr></thead>`)
	}
	b.WriteString(`<tbody>`)
	for _, row := range c.Rows {
		b.WriteString(`<tr>`)
		for i := 0; i < width; i++ {
			b.WriteString(`<td>` + esc(cell(row, i)) + `</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

// cell returns row[i], or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
