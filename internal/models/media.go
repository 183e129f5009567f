// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// bytesPerMB is the divisor used for every user-visible file size.
const bytesPerMB = 1024 * 1024

// MediaKind is the block family an upload is destined for.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindAudio MediaKind = "audio"
	MediaKindPDF   MediaKind = "pdf"
	MediaKindVideo MediaKind = "video"
)

// Media represents a file uploaded to S3-compatible object storage for use
// in an image, audio, video or pdf block.
type Media struct {
	ID           uuid.UUID `json:"id"`
	Kind         MediaKind `json:"kind"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	Bucket       string    `json:"bucket"`
	S3Key        string    `json:"s3Key"`
	ThumbS3Key   *string   `json:"thumbS3Key,omitempty"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.ContentType, "image/")
}

// SizeLabel returns the file size in the MB format shown by the editor.
func (m *Media) SizeLabel() string {
	return FormatFileSize(m.SizeBytes)
}

// FormatFileSize renders a byte count as megabytes with two decimals,
// e.g. 2621440 -> "2.50 MB". Every surface that shows a file size uses it.
func FormatFileSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/bytesPerMB)
}
