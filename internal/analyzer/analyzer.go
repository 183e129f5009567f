// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analyzer reports how much of the template catalog the content
// library actually uses and recommends where to diversify.
package analyzer

import (
	"fmt"
	"math"
	"strings"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// BlockUsage is the coverage of one block type.
type BlockUsage struct {
	Available       int      `json:"available"`
	Used            int      `json:"used"`
	UsagePercentage int      `json:"usagePercentage"`
	UsedVariants    []string `json:"usedVariants"`
	UnusedVariants  []string `json:"unusedVariants"`
}

// Recommendation is one suggested follow-up.
type Recommendation struct {
	Priority  string           `json:"priority"`
	BlockType models.BlockType `json:"blockType,omitempty"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
}

// Report is the result of a usage analysis.
type Report struct {
	TotalBlocks     int                             `json:"totalBlocks"`
	UsedBlocks      int                             `json:"usedBlocks"`
	TotalVariants   int                             `json:"totalVariants"`
	UsedVariants    int                             `json:"usedVariants"`
	UsageByBlock    map[models.BlockType]BlockUsage `json:"usageByBlock"`
	Recommendations []Recommendation                `json:"recommendations"`

	order []models.BlockType
}

// BlockTypes returns the analysed block types in catalog order.
func (r *Report) BlockTypes() []models.BlockType {
	return append([]models.BlockType(nil), r.order...)
}

// OverallPercentage is the share of all variants in use.
func (r *Report) OverallPercentage() int {
	return percent(r.UsedVariants, r.TotalVariants)
}

// AnalyzeContentLibraryUsage analyses the embedded ledger against the
// default catalog.
func AnalyzeContentLibraryUsage() *Report {
	return Analyze(catalog.Default(), DefaultLedger())
}

// Analyze computes coverage of c by l. Ledger entries that are not in the
// catalog are ignored here; Ledger.Validate reports them.
func Analyze(c *catalog.Catalog, l Ledger) *Report {
	r := &Report{
		UsageByBlock:    make(map[models.BlockType]BlockUsage),
		Recommendations: []Recommendation{},
	}

	for _, entry := range c.Entries() {
		listed := make(map[string]bool, len(l[entry.BlockType]))
		for _, id := range l[entry.BlockType] {
			listed[id] = true
		}

		u := BlockUsage{
			Available:      len(entry.Variants),
			UsedVariants:   []string{},
			UnusedVariants: []string{},
		}
		for _, v := range entry.Variants {
			if listed[v.ID] {
				u.UsedVariants = append(u.UsedVariants, v.ID)
			} else {
				u.UnusedVariants = append(u.UnusedVariants, v.ID)
			}
		}
		u.Used = len(u.UsedVariants)
		u.UsagePercentage = percent(u.Used, u.Available)

		r.order = append(r.order, entry.BlockType)
		r.UsageByBlock[entry.BlockType] = u
		r.TotalBlocks++
		r.TotalVariants += u.Available
		r.UsedVariants += u.Used
		if u.Used > 0 {
			r.UsedBlocks++
		}

		switch {
		case u.Used == 0:
			r.Recommendations = append(r.Recommendations, Recommendation{
				Priority:  PriorityHigh,
				BlockType: entry.BlockType,
				Title:     "Unused block type",
				Message: fmt.Sprintf("No %s variants are used. Add %s blocks to lessons or retire the type.",
					entry.BlockType, entry.BlockType),
			})
		case 2*u.Used < u.Available:
			r.Recommendations = append(r.Recommendations, Recommendation{
				Priority:  PriorityMedium,
				BlockType: entry.BlockType,
				Title:     "Underutilized variants",
				Message: fmt.Sprintf("%s uses %d of %d variants (%d%%). Unused: %s.",
					entry.BlockType, u.Used, u.Available, u.UsagePercentage, strings.Join(u.UnusedVariants, ", ")),
			})
		}
	}

	r.Recommendations = append(r.Recommendations, Recommendation{
		Priority: PriorityLow,
		Title:    "Content diversity",
		Message: fmt.Sprintf("Lessons use %d of %d block types and %d of %d variants (%d%%).",
			r.UsedBlocks, r.TotalBlocks, r.UsedVariants, r.TotalVariants, r.OverallPercentage()),
	})
	return r
}

// percent is round(100*part/whole), or 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}
