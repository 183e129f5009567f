package models

import (
	"fmt"
	"math"
	"testing"
)

// TestMediaIsImage verifies that IsImage correctly identifies image content
// types by checking for the "image/" prefix.
func TestMediaIsImage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{name: "jpeg", contentType: "image/jpeg", want: true},
		{name: "png", contentType: "image/png", want: true},
		{name: "webp", contentType: "image/webp", want: true},
		{name: "pdf", contentType: "application/pdf", want: false},
		{name: "mp3 audio", contentType: "audio/mpeg", want: false},
		{name: "mp4 video", contentType: "video/mp4", want: false},
		{name: "empty content type", contentType: "", want: false},
		{name: "only image prefix no slash", contentType: "image", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Media{ContentType: tt.contentType}
			if got := m.IsImage(); got != tt.want {
				t.Errorf("Media{ContentType: %q}.IsImage() = %v, want %v",
					tt.contentType, got, tt.want)
			}
		})
	}
}

// TestFormatFileSize checks the MB convention shared by audio, pdf and
// upload responses.
func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0.00 MB"},
		{name: "two and a half MB", bytes: 2621440, want: "2.50 MB"},
		{name: "exactly one MB", bytes: 1048576, want: "1.00 MB"},
		{name: "one KB", bytes: 1024, want: "0.00 MB"},
		{name: "rounds up", bytes: 1048576 + 10486, want: "1.01 MB"},
		{name: "large file", bytes: 157286400, want: "150.00 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFileSize(tt.bytes); got != tt.want {
				t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

// TestFormatFileSizeMatchesRounding compares the label against the
// round(b/1048576, 2) definition over a spread of sizes.
func TestFormatFileSizeMatchesRounding(t *testing.T) {
	for b := int64(0); b < 50*bytesPerMB; b += 777_777 {
		want := fmt.Sprintf("%.2f MB", math.Round(float64(b)/bytesPerMB*100)/100)
		if got := FormatFileSize(b); got != want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", b, got, want)
		}
	}
}

func TestMediaSizeLabel(t *testing.T) {
	m := &Media{SizeBytes: 2621440}
	if got := m.SizeLabel(); got != "2.50 MB" {
		t.Errorf("SizeLabel() = %q, want %q", got, "2.50 MB")
	}
}
