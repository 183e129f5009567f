// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"testing"

	"lessonpress/internal/models"
)

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"/media/preview/abc", "/media/preview/abc"},
		{"mailto:hi@example.com", "mailto:hi@example.com"},
		{"https://example.com/?a=1&b=2", "https://example.com/?a=1&amp;b=2"},
		{"javascript:alert(1)", ""},
		{"JavaScript:alert(1)", ""},
		{"data:text/html;base64,xx", ""},
		{"  ", ""},
	}
	for _, tc := range tests {
		if got := safeURL(tc.in); got != tc.want {
			t.Errorf("safeURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCSSURLStripsBreakouts(t *testing.T) {
	got := cssURL("https://example.com/a'b(c).png")
	want := "https://example.com/a%27b%28c%29.png"
	if got != want {
		t.Errorf("cssURL = %q, want %q", got, want)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Ada Lovelace", "AL"},
		{"grace", "G"},
		{"Jean Baptiste Say", "JB"},
		{"", ""},
		{"42 Ångström", "Å"},
	}
	for _, tc := range tests {
		if got := initials(tc.in); got != tc.want {
			t.Errorf("initials(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDomIDIsStable(t *testing.T) {
	a := domID("carousel", "one", "two")
	if a != domID("carousel", "one", "two") {
		t.Error("domID not stable")
	}
	if a == domID("carousel", "onetwo") {
		t.Error("domID should separate parts")
	}
}

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name    string
		content YouTubeContent
		want    string
	}{
		{"explicit id", YouTubeContent{VideoID: "dQw4w9WgXcQ"}, "dQw4w9WgXcQ"},
		{"watch url", YouTubeContent{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10"}, "dQw4w9WgXcQ"},
		{"short link", YouTubeContent{URL: "https://youtu.be/dQw4w9WgXcQ"}, "dQw4w9WgXcQ"},
		{"embed", YouTubeContent{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"}, "dQw4w9WgXcQ"},
		{"shorts", YouTubeContent{URL: "https://youtube.com/shorts/dQw4w9WgXcQ"}, "dQw4w9WgXcQ"},
		{"other host", YouTubeContent{URL: "https://vimeo.com/12345678"}, ""},
		{"bad id", YouTubeContent{VideoID: `"><script>`}, ""},
		{"empty", YouTubeContent{}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := YouTubeVideoID(&tc.content); got != tc.want {
				t.Errorf("YouTubeVideoID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	c, err := Decode(models.BlockTypeQuote, []byte(`{"quote":"Hi","author":"Ada"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	q, ok := c.(*QuoteContent)
	if !ok || q.Quote != "Hi" || q.Author != "Ada" {
		t.Errorf("Decode returned %#v", c)
	}

	for _, raw := range []string{"", "null", "  "} {
		c, err := Decode(models.BlockTypeList, []byte(raw))
		if err != nil {
			t.Errorf("Decode(%q): unexpected error %v", raw, err)
		}
		if l := c.(*ListContent); l.Items == nil {
			t.Errorf("Decode(%q): Items should be empty, not nil", raw)
		}
	}

	c, err = Decode(models.BlockTypeList, []byte(`{"items":`))
	if err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, ok := c.(*ListContent); !ok {
		t.Errorf("failed decode should still return empty content, got %#v", c)
	}

	if _, err := Decode(models.BlockType("nope"), []byte(`{}`)); err == nil {
		t.Error("expected error for unknown block type")
	}
}

func TestEmptyCoversEveryType(t *testing.T) {
	for _, bt := range models.BlockTypes {
		c := Empty(bt)
		if c == nil {
			t.Errorf("Empty(%q) = nil", bt)
			continue
		}
		if c.BlockType() != bt {
			t.Errorf("Empty(%q).BlockType() = %q", bt, c.BlockType())
		}
	}
	if Empty("nope") != nil {
		t.Error("Empty of unknown type should be nil")
	}
}
