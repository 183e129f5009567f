// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"lessonpress/internal/blocks"
	"lessonpress/internal/models"
)

// ErrEmptyContent is returned by Parse when there is nothing to parse.
var ErrEmptyContent = errors.New("empty content")

// RawContent is the content field of a generation response: either free
// text or a structured JSON value. The zero value is empty text.
type RawContent struct {
	text       string
	structured json.RawMessage
}

// Text wraps a plain string response.
func Text(s string) RawContent {
	return RawContent{text: s}
}

// Structured wraps a JSON object or array response.
func Structured(v json.RawMessage) RawContent {
	return RawContent{structured: append(json.RawMessage(nil), v...)}
}

// StructuredValue marshals v and wraps the result.
func StructuredValue(v any) (RawContent, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return RawContent{}, fmt.Errorf("marshal structured content: %w", err)
	}
	return Structured(b), nil
}

// IsText reports whether the content arrived as a string.
func (r RawContent) IsText() bool { return r.structured == nil }

// UnmarshalJSON picks the arm from the leading JSON token.
func (r *RawContent) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*r = RawContent{}
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("raw content string: %w", err)
		}
		*r = Text(s)
	default:
		if !json.Valid(trimmed) {
			return errors.New("raw content: invalid JSON")
		}
		*r = Structured(trimmed)
	}
	return nil
}

// MarshalJSON writes the active arm back out unchanged.
func (r RawContent) MarshalJSON() ([]byte, error) {
	if r.IsText() {
		return json.Marshal(r.text)
	}
	return r.structured, nil
}

// Parse converts the raw value into the canonical content for blockType.
// Text and statement blocks accept plain strings. Every other type expects
// JSON, which may arrive as a string wrapped in Markdown code fences. Lists
// also accept a bare JSON array of items.
func (r RawContent) Parse(blockType models.BlockType) (blocks.Content, error) {
	if blocks.Empty(blockType) == nil {
		return nil, fmt.Errorf("parse content: unknown block type %q", blockType)
	}

	data := r.structured
	if r.IsText() {
		s := StripCodeFences(r.text)
		if s == "" {
			return nil, ErrEmptyContent
		}
		if plain := plainContent(blockType, s); plain != nil {
			if !looksLikeJSON(s) {
				return plain, nil
			}
			if c, err := blocks.Decode(blockType, []byte(s)); err == nil {
				return c, nil
			}
			return plain, nil
		}
		if !looksLikeJSON(s) {
			return nil, fmt.Errorf("parse %s content: expected JSON, got plain text", blockType)
		}
		data = json.RawMessage(s)
	}

	if blockType == models.BlockTypeList && bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		items, err := parseItems(data)
		if err != nil {
			return nil, fmt.Errorf("parse list items: %w", err)
		}
		return &blocks.ListContent{Items: items}, nil
	}

	return blocks.Decode(blockType, data)
}

// parseItems reads a bare JSON array of list items. Strings are taken as-is,
// objects contribute their text, item or title field, and scalars are
// formatted.
func parseItems(data []byte) ([]string, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]string, 0, len(raw))
	for _, el := range raw {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			items = append(items, s)
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(el, &obj); err == nil {
			for _, key := range []string{"text", "item", "title", "content"} {
				if v, ok := obj[key].(string); ok {
					items = append(items, v)
					break
				}
			}
			continue
		}
		items = append(items, strings.Trim(string(el), `"`))
	}
	return items, nil
}

// plainContent wraps s for the block types that accept free text.
func plainContent(blockType models.BlockType, s string) blocks.Content {
	switch blockType {
	case models.BlockTypeText:
		return &blocks.TextContent{Text: s}
	case models.BlockTypeStatement:
		return &blocks.StatementContent{Text: s}
	}
	return nil
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

// StripCodeFences removes a surrounding ``` or ```json fence and trims
// whitespace. Text without a fence is only trimmed.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
