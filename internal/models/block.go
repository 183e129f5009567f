// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BlockType identifies the kind of a lesson content block. The set is closed:
// anything not listed in BlockTypes is treated as unknown.
type BlockType string

const (
	BlockTypeText        BlockType = "text"
	BlockTypeStatement   BlockType = "statement"
	BlockTypeQuote       BlockType = "quote"
	BlockTypeImage       BlockType = "image"
	BlockTypeList        BlockType = "list"
	BlockTypeTables      BlockType = "tables"
	BlockTypeInteractive BlockType = "interactive"
	BlockTypeDivider     BlockType = "divider"
	BlockTypeVideo       BlockType = "video"
	BlockTypeAudio       BlockType = "audio"
	BlockTypeYouTube     BlockType = "youtube"
	BlockTypeLink        BlockType = "link"
	BlockTypePDF         BlockType = "pdf"
)

// BlockTypes lists every known block type in display order.
var BlockTypes = []BlockType{
	BlockTypeText,
	BlockTypeStatement,
	BlockTypeQuote,
	BlockTypeImage,
	BlockTypeList,
	BlockTypeTables,
	BlockTypeInteractive,
	BlockTypeDivider,
	BlockTypeVideo,
	BlockTypeAudio,
	BlockTypeYouTube,
	BlockTypeLink,
	BlockTypePDF,
}

// IsValid reports whether t is one of the known block types.
func (t BlockType) IsValid() bool {
	for _, known := range BlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Block is a unit of lesson content. HTML is derived from Type, TemplateID
// and Content and must never be edited on its own; regenerate it whenever
// either of those changes.
type Block struct {
	ID         string          `json:"id"`
	LessonID   uuid.UUID       `json:"lessonId"`
	Type       BlockType       `json:"type"`
	TemplateID string          `json:"templateId"`
	Content    json.RawMessage `json:"content"`
	HTML       string          `json:"html"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
	Order      int             `json:"order"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
