// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package analyzer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Content Library Usage\n")
	b.WriteString("=====================\n\n")
	fmt.Fprintf(&b, "Block types: %d/%d used\n", r.UsedBlocks, r.TotalBlocks)
	fmt.Fprintf(&b, "Variants:    %d/%d used (%d%%)\n\n", r.UsedVariants, r.TotalVariants, r.OverallPercentage())

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tUSED\tUSAGE\tUNUSED VARIANTS")
	for _, bt := range r.order {
		u := r.UsageByBlock[bt]
		unused := strings.Join(u.UnusedVariants, ", ")
		if unused == "" {
			unused = "-"
		}
		fmt.Fprintf(tw, "%s\t%d/%d\t%d%%\t%s\n", bt, u.Used, u.Available, u.UsagePercentage, unused)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report table: %w", err)
	}

	b.WriteString("\nRecommendations\n")
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  [%s] %s: %s\n", strings.ToUpper(rec.Priority), rec.Title, rec.Message)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
