// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns lesson titles into URL paths. Accented Latin letters
// are folded to ASCII ("Über Lernen" becomes "uber-lernen"); scripts with
// no ASCII form are dropped, so callers must handle an empty result.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps a slug so a "-N" collision suffix still fits the
// lessons.slug column.
const MaxLength = 120

var (
	// nonAlphanumeric matches runs of anything that isn't a-z or 0-9.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

	// ligatures covers letters that Unicode does not decompose.
	ligatures = strings.NewReplacer(
		"ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "đ", "d", "ł", "l", "þ", "th",
		"’", "", "'", "",
	)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Café au lait: 2 Recipes" → "cafe-au-lait-2-recipes"
func Generate(s string) string {
	result := ligatures.Replace(strings.ToLower(strings.TrimSpace(s)))
	result = fold(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return truncate(result)
}

// fold decomposes s and drops the combining marks, leaving base letters.
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// truncate cuts s to MaxLength, preferring the last word boundary.
func truncate(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	s = s[:MaxLength]
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}
