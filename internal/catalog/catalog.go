// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog exposes the static registry of block types and the
// template variants each one can be rendered with. The registry is loaded
// once from an embedded YAML document and is read-only afterwards, so every
// method is safe for concurrent use.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"lessonpress/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Template describes one renderable variant of a block type.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Entry groups the variants available for a single block type.
type Entry struct {
	BlockType models.BlockType `json:"blockType" yaml:"type"`
	Default   string           `json:"default" yaml:"default"`
	Variants  []Template       `json:"variants" yaml:"variants"`
}

// document mirrors the YAML layout of catalog.yaml.
type document struct {
	AIGeneration []models.BlockType `yaml:"ai_generation"`
	BlockTypes   []Entry            `yaml:"block_types"`
}

// Catalog is the immutable block type -> variants registry.
type Catalog struct {
	order     []models.BlockType
	entries   map[models.BlockType]*Entry
	aiEnabled map[models.BlockType]bool
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled into the binary. It panics if the
// embedded document is malformed, which is a build defect rather than a
// runtime condition.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalog.yaml is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog parse: %w", err)
	}

	c := &Catalog{
		entries:   make(map[models.BlockType]*Entry, len(doc.BlockTypes)),
		aiEnabled: make(map[models.BlockType]bool, len(doc.AIGeneration)),
	}

	var errs []error
	for i := range doc.BlockTypes {
		e := doc.BlockTypes[i]
		if !e.BlockType.IsValid() {
			errs = append(errs, fmt.Errorf("unknown block type %q", e.BlockType))
			continue
		}
		if _, dup := c.entries[e.BlockType]; dup {
			errs = append(errs, fmt.Errorf("block type %q listed twice", e.BlockType))
			continue
		}
		if len(e.Variants) == 0 {
			errs = append(errs, fmt.Errorf("block type %q has no variants", e.BlockType))
			continue
		}

		seen := make(map[string]bool, len(e.Variants))
		for _, v := range e.Variants {
			if v.ID == "" {
				errs = append(errs, fmt.Errorf("block type %q has a variant without id", e.BlockType))
			}
			if seen[v.ID] {
				errs = append(errs, fmt.Errorf("block type %q: duplicate variant %q", e.BlockType, v.ID))
			}
			seen[v.ID] = true
		}
		if !seen[e.Default] {
			errs = append(errs, fmt.Errorf("block type %q: default %q is not a variant", e.BlockType, e.Default))
		}

		c.order = append(c.order, e.BlockType)
		c.entries[e.BlockType] = &e
	}

	for _, bt := range doc.AIGeneration {
		if _, ok := c.entries[bt]; !ok {
			errs = append(errs, fmt.Errorf("ai_generation lists %q which has no catalog entry", bt))
			continue
		}
		c.aiEnabled[bt] = true
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("catalog invalid: %w", err)
	}
	return c, nil
}

// TemplatesForBlockType returns the variants for blockType in catalog order.
// Unknown block types yield an empty, non-nil slice.
func (c *Catalog) TemplatesForBlockType(blockType string) []Template {
	e, ok := c.entries[models.BlockType(blockType)]
	if !ok {
		return []Template{}
	}
	out := make([]Template, len(e.Variants))
	copy(out, e.Variants)
	return out
}

// SupportsAIGeneration reports whether AI content generation is enabled for
// blockType.
func (c *Catalog) SupportsAIGeneration(blockType string) bool {
	return c.aiEnabled[models.BlockType(blockType)]
}

// Has reports whether templateID is a variant of blockType.
func (c *Catalog) Has(blockType models.BlockType, templateID string) bool {
	e, ok := c.entries[blockType]
	if !ok {
		return false
	}
	for _, v := range e.Variants {
		if v.ID == templateID {
			return true
		}
	}
	return false
}

// DefaultVariant returns the fallback variant of blockType, or "" if the
// type is not in the catalog.
func (c *Catalog) DefaultVariant(blockType models.BlockType) string {
	if e, ok := c.entries[blockType]; ok {
		return e.Default
	}
	return ""
}

// Resolve returns templateID when it belongs to blockType and the type's
// default variant otherwise.
func (c *Catalog) Resolve(blockType models.BlockType, templateID string) string {
	if c.Has(blockType, templateID) {
		return templateID
	}
	return c.DefaultVariant(blockType)
}

// BlockTypes returns the catalogued block types in document order.
func (c *Catalog) BlockTypes() []models.BlockType {
	out := make([]models.BlockType, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns a copy of every entry in document order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, bt := range c.order {
		e := *c.entries[bt]
		e.Variants = append([]Template(nil), e.Variants...)
		out = append(out, e)
	}
	return out
}

// VariantCount returns how many variants blockType has (0 when unknown).
func (c *Catalog) VariantCount(blockType models.BlockType) int {
	if e, ok := c.entries[blockType]; ok {
		return len(e.Variants)
	}
	return 0
}

// TemplatesForBlockType is a shorthand for Default().TemplatesForBlockType.
func TemplatesForBlockType(blockType string) []Template {
	return Default().TemplatesForBlockType(blockType)
}

// SupportsAIGeneration is a shorthand for Default().SupportsAIGeneration.
func SupportsAIGeneration(blockType string) bool {
	return Default().SupportsAIGeneration(blockType)
}
