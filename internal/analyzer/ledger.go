// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package analyzer

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
)

//go:embed ledger.yaml
var ledgerYAML []byte

// Ledger records which variants of each block type the content library
// uses. Types missing from the ledger count as unused.
type Ledger map[models.BlockType][]string

type ledgerDocument struct {
	Usage Ledger `yaml:"usage"`
}

// LoadLedger parses a ledger document.
func LoadLedger(data []byte) (Ledger, error) {
	var doc ledgerDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ledger parse: %w", err)
	}
	if doc.Usage == nil {
		doc.Usage = Ledger{}
	}
	return doc.Usage, nil
}

// DefaultLedger returns the ledger compiled into the binary.
func DefaultLedger() Ledger {
	l, err := LoadLedger(ledgerYAML)
	if err != nil {
		panic(fmt.Sprintf("analyzer: embedded ledger.yaml is invalid: %v", err))
	}
	return l
}

// Validate reports ledger entries that do not exist in c: unknown block
// types, variants of another type, and duplicates.
func (l Ledger) Validate(c *catalog.Catalog) error {
	types := make([]models.BlockType, 0, len(l))
	for bt := range l {
		types = append(types, bt)
	}
	slices.Sort(types)

	var errs []error
	for _, bt := range types {
		if c.VariantCount(bt) == 0 {
			errs = append(errs, fmt.Errorf("block type %q is not in the catalog", bt))
			continue
		}
		seen := make(map[string]bool, len(l[bt]))
		for _, id := range l[bt] {
			if seen[id] {
				errs = append(errs, fmt.Errorf("%s: variant %q listed twice", bt, id))
				continue
			}
			seen[id] = true
			if !c.Has(bt, id) {
				errs = append(errs, fmt.Errorf("%s: variant %q is not in the catalog", bt, id))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("ledger invalid: %w", err)
	}
	return nil
}
