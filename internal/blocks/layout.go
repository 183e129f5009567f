// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "lessonpress/internal/models"

// Layout is the structural shape a variant renders with. Each block type's
// renderer switches on the Layout rather than on raw template ids.
type Layout int

const (
	LayoutPlain Layout = iota

	// text
	LayoutHeading
	LayoutSubheading
	LayoutMasterHeading
	LayoutHeadingBody
	LayoutSubheadingBody
	LayoutColumns

	// statement
	LayoutBordered
	LayoutBoxed
	LayoutHighlight
	LayoutDisplay
	LayoutNote

	// quote
	LayoutAvatar
	LayoutAccent
	LayoutCarousel

	// image, quote_b
	LayoutCentered
	LayoutSideBySide
	LayoutOverlay
	LayoutFullWidth

	// list
	LayoutBulleted
	LayoutNumbered
	LayoutChecklist

	// tables
	LayoutStriped
	LayoutGrid

	// interactive
	LayoutAccordion
	LayoutTabs
	LayoutFlashcards
	LayoutButton

	// divider
	LayoutRule
	LayoutContinue
	LayoutNumberedRule
	LayoutSpacer

	// media
	LayoutCaptioned
	LayoutTranscript
	LayoutBackground
	LayoutMinimal
	LayoutCard
	LayoutInline
	LayoutEmbed
	LayoutDownload
)

// descriptor pairs a Layout with the CSS modifier class of a variant.
type descriptor struct {
	Layout Layout
	Class  string
}

var descriptors = map[models.BlockType]map[string]descriptor{
	models.BlockTypeText: {
		"paragraph":            {LayoutPlain, "text--paragraph"},
		"heading":              {LayoutHeading, "text--heading"},
		"subheading":           {LayoutSubheading, "text--subheading"},
		"master_heading":       {LayoutMasterHeading, "text--master-heading"},
		"heading_paragraph":    {LayoutHeadingBody, "text--heading-paragraph"},
		"subheading_paragraph": {LayoutSubheadingBody, "text--subheading-paragraph"},
		"columns":              {LayoutColumns, "text--columns"},
	},
	models.BlockTypeStatement: {
		"statement-a": {LayoutBordered, "statement--a"},
		"statement-b": {LayoutBoxed, "statement--b"},
		"statement-c": {LayoutHighlight, "statement--c"},
		"statement-d": {LayoutDisplay, "statement--d"},
		"note":        {LayoutNote, "statement--note"},
	},
	models.BlockTypeQuote: {
		"quote_a":        {LayoutBordered, "quote--a"},
		"quote_b":        {LayoutCentered, "quote--b"},
		"quote_c":        {LayoutAvatar, "quote--c"},
		"quote_d":        {LayoutAccent, "quote--d"},
		"quote_on_image": {LayoutOverlay, "quote--on-image"},
		"quote_carousel": {LayoutCarousel, "quote--carousel"},
	},
	models.BlockTypeImage: {
		"centered":     {LayoutCentered, "image--centered"},
		"side-by-side": {LayoutSideBySide, "image--side-by-side"},
		"overlay":      {LayoutOverlay, "image--overlay"},
		"full-width":   {LayoutFullWidth, "image--full-width"},
	},
	models.BlockTypeList: {
		"bulleted": {LayoutBulleted, "list--bulleted"},
		"numbered": {LayoutNumbered, "list--numbered"},
		"checkbox": {LayoutChecklist, "list--checkbox"},
	},
	models.BlockTypeTables: {
		"table":    {LayoutPlain, "tables--table"},
		"striped":  {LayoutStriped, "tables--striped"},
		"bordered": {LayoutGrid, "tables--bordered"},
	},
	models.BlockTypeInteractive: {
		"accordion":  {LayoutAccordion, "interactive--accordion"},
		"tabs":       {LayoutTabs, "interactive--tabs"},
		"flashcards": {LayoutFlashcards, "interactive--flashcards"},
		"button":     {LayoutButton, "interactive--button"},
	},
	models.BlockTypeDivider: {
		"divider":          {LayoutRule, "divider--rule"},
		"continue":         {LayoutContinue, "divider--continue"},
		"numbered_divider": {LayoutNumberedRule, "divider--numbered"},
		"spacer":           {LayoutSpacer, "divider--spacer"},
	},
	models.BlockTypeVideo: {
		"video":                 {LayoutPlain, "video--plain"},
		"video_with_caption":    {LayoutCaptioned, "video--caption"},
		"video_with_transcript": {LayoutTranscript, "video--transcript"},
		"video_background":      {LayoutBackground, "video--background"},
	},
	models.BlockTypeAudio: {
		"audio_player":          {LayoutPlain, "audio--player"},
		"audio_with_transcript": {LayoutTranscript, "audio--transcript"},
		"audio_minimal":         {LayoutMinimal, "audio--minimal"},
	},
	models.BlockTypeYouTube: {
		"youtube":              {LayoutPlain, "youtube--plain"},
		"youtube_with_caption": {LayoutCaptioned, "youtube--caption"},
	},
	models.BlockTypeLink: {
		"link_card":   {LayoutCard, "link--card"},
		"link_button": {LayoutButton, "link--button"},
		"link_inline": {LayoutInline, "link--inline"},
	},
	models.BlockTypePDF: {
		"pdf_embed":    {LayoutEmbed, "pdf--embed"},
		"pdf_download": {LayoutDownload, "pdf--download"},
	},
}

// lookupDescriptor returns the descriptor for an already-resolved variant.
func lookupDescriptor(blockType models.BlockType, variant string) (descriptor, bool) {
	d, ok := descriptors[blockType][variant]
	return d, ok
}
