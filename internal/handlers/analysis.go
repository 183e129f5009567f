// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"lessonpress/internal/analyzer"
	"lessonpress/internal/cache"
	"lessonpress/internal/catalog"
)

// Analysis reports catalog coverage of the content library.
type Analysis struct {
	catalog *catalog.Catalog
	ledger  analyzer.Ledger
	usage   *cache.UsageCounter
}

// NewAnalysis creates the analysis handler group. A nil ledger means the
// one compiled into the binary; usage may be nil, which disables
// ?source=live.
func NewAnalysis(c *catalog.Catalog, ledger analyzer.Ledger, usage *cache.UsageCounter) *Analysis {
	if c == nil {
		c = catalog.Default()
	}
	if ledger == nil {
		ledger = analyzer.DefaultLedger()
	}
	return &Analysis{catalog: c, ledger: ledger, usage: usage}
}

type usageResponse struct {
	*analyzer.Report
	Source            string `json:"source"`
	OverallPercentage int    `json:"overallPercentage"`
}

// Usage returns the usage report. ?source=live analyses the counters
// recorded by the editor instead of the static ledger.
func (h *Analysis) Usage(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	ledger := h.ledger

	switch source {
	case "", "ledger":
		source = "ledger"
	case "live":
		if h.usage == nil {
			writeError(w, http.StatusServiceUnavailable, "Live usage counters are not available.")
			return
		}
		snap, err := h.usage.Snapshot(r.Context())
		if err != nil {
			slog.Error("usage snapshot failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Live usage counters are not available.")
			return
		}
		ledger = analyzer.Ledger(snap)
	default:
		writeError(w, http.StatusBadRequest, "Source must be ledger or live.")
		return
	}

	report := analyzer.Analyze(h.catalog, ledger)
	writeJSON(w, http.StatusOK, usageResponse{
		Report:            report,
		Source:            source,
		OverallPercentage: report.OverallPercentage(),
	})
}

// Ledger validates the static ledger against the catalog.
func (h *Analysis) Ledger(w http.ResponseWriter, r *http.Request) {
	problems := []string{}
	if err := h.ledger.Validate(h.catalog); err != nil {
		if joined, ok := errors.Unwrap(err).(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				problems = append(problems, e.Error())
			}
		} else {
			problems = append(problems, err.Error())
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}
