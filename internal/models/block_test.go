package models

import "testing"

// TestBlockTypeConstants verifies the wire values of the block types.
func TestBlockTypeConstants(t *testing.T) {
	tests := []struct {
		bt   BlockType
		want string
	}{
		{BlockTypeText, "text"},
		{BlockTypeStatement, "statement"},
		{BlockTypeQuote, "quote"},
		{BlockTypeImage, "image"},
		{BlockTypeList, "list"},
		{BlockTypeTables, "tables"},
		{BlockTypeInteractive, "interactive"},
		{BlockTypeDivider, "divider"},
		{BlockTypeVideo, "video"},
		{BlockTypeAudio, "audio"},
		{BlockTypeYouTube, "youtube"},
		{BlockTypeLink, "link"},
		{BlockTypePDF, "pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if string(tc.bt) != tc.want {
				t.Errorf("BlockType = %q, want %q", string(tc.bt), tc.want)
			}
			if !tc.bt.IsValid() {
				t.Errorf("BlockType(%q).IsValid() = false", tc.want)
			}
		})
	}
}

// TestBlockTypesDistinct ensures the ordered list has no duplicates.
func TestBlockTypesDistinct(t *testing.T) {
	seen := make(map[BlockType]bool)
	for _, bt := range BlockTypes {
		if seen[bt] {
			t.Errorf("duplicate BlockType value: %q", bt)
		}
		seen[bt] = true
	}
	if len(seen) != 13 {
		t.Errorf("BlockTypes has %d entries, want 13", len(seen))
	}
}

func TestBlockTypeIsValidRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "Text", "carousel", "table"} {
		if BlockType(s).IsValid() {
			t.Errorf("BlockType(%q).IsValid() = true, want false", s)
		}
	}
}
