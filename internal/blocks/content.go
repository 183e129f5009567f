// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"lessonpress/internal/models"
)

// Content is the canonical semantic payload of a block. Every
// implementation is a pointer to one of the structs below, and the JSON
// field names are the wire format stored in blocks.content.
type Content interface {
	BlockType() models.BlockType
}

// TextContent backs text blocks. Text is Markdown.
type TextContent struct {
	Heading    string   `json:"heading,omitempty"`
	Subheading string   `json:"subheading,omitempty"`
	Text       string   `json:"text"`
	Columns    []string `json:"columns,omitempty"`
}

// StatementContent backs statement blocks. Text may use **bold** emphasis.
type StatementContent struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
}

// QuoteItem is a single slide of a quote carousel.
type QuoteItem struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// QuoteContent backs quote blocks.
type QuoteContent struct {
	Quote       string      `json:"quote"`
	Author      string      `json:"author"`
	AuthorTitle string      `json:"authorTitle,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Quotes      []QuoteItem `json:"quotes,omitempty"`
}

// ImageContent backs image blocks. Alignment is one of left, center, right.
type ImageContent struct {
	ImageURL         string `json:"imageUrl"`
	ImageTitle       string `json:"imageTitle"`
	ImageDescription string `json:"imageDescription"`
	Alignment        string `json:"alignment"`
	AltText          string `json:"altText,omitempty"`
}

// ListContent backs list blocks.
type ListContent struct {
	Title string   `json:"title,omitempty"`
	Items []string `json:"items"`
}

// TableContent backs tables blocks.
type TableContent struct {
	Caption string     `json:"caption,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// InteractiveItem is one panel, tab or card of an interactive block.
type InteractiveItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// InteractiveContent backs interactive blocks.
type InteractiveContent struct {
	Title       string            `json:"title,omitempty"`
	Items       []InteractiveItem `json:"items"`
	ButtonLabel string            `json:"buttonLabel,omitempty"`
	ButtonURL   string            `json:"buttonUrl,omitempty"`
}

// DividerContent backs divider blocks.
type DividerContent struct {
	Label  string `json:"label,omitempty"`
	Number int    `json:"number,omitempty"`
}

// VideoContent backs video blocks.
type VideoContent struct {
	VideoURL   string `json:"videoUrl"`
	PosterURL  string `json:"posterUrl,omitempty"`
	Title      string `json:"title,omitempty"`
	Caption    string `json:"caption,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// AudioContent backs audio blocks. FileSize is in bytes.
type AudioContent struct {
	AudioURL   string `json:"audioUrl"`
	Title      string `json:"title,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	FileSize   int64  `json:"fileSize,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// YouTubeContent backs youtube blocks. VideoID wins over URL.
type YouTubeContent struct {
	VideoID string `json:"videoId,omitempty"`
	URL     string `json:"url,omitempty"`
	Title   string `json:"title,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// LinkContent backs link blocks.
type LinkContent struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PDFContent backs pdf blocks. FileSize is in bytes.
type PDFContent struct {
	PDFURL   string `json:"pdfUrl"`
	Title    string `json:"title,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
}

func (*TextContent) BlockType() models.BlockType        { return models.BlockTypeText }
func (*StatementContent) BlockType() models.BlockType   { return models.BlockTypeStatement }
func (*QuoteContent) BlockType() models.BlockType       { return models.BlockTypeQuote }
func (*ImageContent) BlockType() models.BlockType       { return models.BlockTypeImage }
func (*ListContent) BlockType() models.BlockType        { return models.BlockTypeList }
func (*TableContent) BlockType() models.BlockType       { return models.BlockTypeTables }
func (*InteractiveContent) BlockType() models.BlockType { return models.BlockTypeInteractive }
func (*DividerContent) BlockType() models.BlockType     { return models.BlockTypeDivider }
func (*VideoContent) BlockType() models.BlockType       { return models.BlockTypeVideo }
func (*AudioContent) BlockType() models.BlockType       { return models.BlockTypeAudio }
func (*YouTubeContent) BlockType() models.BlockType     { return models.BlockTypeYouTube }
func (*LinkContent) BlockType() models.BlockType        { return models.BlockTypeLink }
func (*PDFContent) BlockType() models.BlockType         { return models.BlockTypePDF }

// Empty returns the zero content for blockType, or nil for unknown types.
// Lists come back with a non-nil empty Items slice so they encode as [].
func Empty(blockType models.BlockType) Content {
	switch blockType {
	case models.BlockTypeText:
		return &TextContent{}
	case models.BlockTypeStatement:
		return &StatementContent{}
	case models.BlockTypeQuote:
		return &QuoteContent{}
	case models.BlockTypeImage:
		return &ImageContent{Alignment: AlignCenter}
	case models.BlockTypeList:
		return &ListContent{Items: []string{}}
	case models.BlockTypeTables:
		return &TableContent{Columns: []string{}, Rows: [][]string{}}
	case models.BlockTypeInteractive:
		return &InteractiveContent{Items: []InteractiveItem{}}
	case models.BlockTypeDivider:
		return &DividerContent{}
	case models.BlockTypeVideo:
		return &VideoContent{}
	case models.BlockTypeAudio:
		return &AudioContent{}
	case models.BlockTypeYouTube:
		return &YouTubeContent{}
	case models.BlockTypeLink:
		return &LinkContent{}
	case models.BlockTypePDF:
		return &PDFContent{}
	}
	return nil
}

// Decode unmarshals raw JSON into the content struct for blockType. Empty
// input and JSON null decode to Empty(blockType).
func Decode(blockType models.BlockType, raw []byte) (Content, error) {
	c := Empty(blockType)
	if c == nil {
		return nil, fmt.Errorf("decode content: unknown block type %q", blockType)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return c, nil
	}
	if err := json.Unmarshal(trimmed, c); err != nil {
		return Empty(blockType), fmt.Errorf("decode %s content: %w", blockType, err)
	}
	return c, nil
}

// Encode marshals content to the JSON stored alongside the block.
func Encode(c Content) (json.RawMessage, error) {
	if c == nil {
		return json.RawMessage("{}"), nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode %s content: %w", c.BlockType(), err)
	}
	return b, nil
}
