// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"hash/fnv"
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"lessonpress/internal/markdown"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// esc escapes user text for use in element content and quoted attributes.
func esc(s string) string {
	return html.EscapeString(s)
}

// emphasize escapes s and turns **bold** runs into open + "text" + close.
func emphasize(s, open, close string) string {
	return boldPattern.ReplaceAllString(esc(s), open+"$1"+close)
}

// safeURL returns u escaped for an attribute when it is relative or uses an
// http(s) or mailto scheme. Anything else (javascript:, data:, ...) yields "".
func safeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "", "http", "https", "mailto":
		return esc(u)
	}
	return ""
}

var cssURLReplacer = strings.NewReplacer(
	`"`, "%22",
	`'`, "%27",
	"(", "%28",
	")", "%29",
	`\`, "%5C",
	" ", "%20",
	"\n", "",
	"\r", "",
)

// cssURL prepares u for a style="background-image:url('...')" attribute.
func cssURL(u string) string {
	s := safeURL(u)
	if s == "" {
		return ""
	}
	return cssURLReplacer.Replace(html.UnescapeString(s))
}

// domID derives a stable element id from content so identical input
// produces identical markup.
func domID(prefix string, parts ...string) string {
	h := fnv.New32a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s-%08x", prefix, h.Sum32())
}

// initials returns up to two upper-cased leading letters of name.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) {
			continue
		}
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// renderMarkdown converts Markdown to HTML, falling back to an escaped
// paragraph if goldmark fails.
func renderMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	out, err := markdown.ToHTML(src)
	if err != nil {
		return "<p>" + esc(src) + "</p>"
	}
	return strings.TrimSpace(out)
}

// element writes <tag class="class">esc(text)</tag> when text is not empty.
func element(b *strings.Builder, tag, class, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, `<%s class="%s">%s</%s>`, tag, class, esc(text), tag)
}
