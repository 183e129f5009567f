// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"lessonpress/internal/models"
)

var youTubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,64}$`)

func renderVideo(b *strings.Builder, layout Layout, c *VideoContent) {
	src := safeURL(c.VideoURL)
	poster := ""
	if p := safeURL(c.PosterURL); p != "" {
		poster = fmt.Sprintf(` poster="%s"`, p)
	}

	if layout == LayoutBackground {
		b.WriteString(`<div class="block-video__background">`)
		fmt.Fprintf(b, `<video class="block-video__player" src="%s"%s autoplay muted loop playsinline></video>`, src, poster)
		element(b, "h2", "block-video__overlay-title", c.Title)
		b.WriteString(`</div>`)
		return
	}

	element(b, "h3", "block-video__title", c.Title)
	fmt.Fprintf(b, `<video class="block-video__player" src="%s"%s controls preload="metadata"></video>`, src, poster)
	switch layout {
	case LayoutCaptioned:
		element(b, "p", "block-video__caption", c.Caption)
	case LayoutTranscript:
		element(b, "p", "block-video__caption", c.Caption)
		transcript(b, "block-video__transcript", c.Transcript)
	}
}

func renderAudio(b *strings.Builder, layout Layout, c *AudioContent) {
	src := safeURL(c.AudioURL)
	if layout == LayoutMinimal {
		fmt.Fprintf(b, `<audio class="block-audio__player" src="%s" controls preload="none"></audio>`, src)
		return
	}

	b.WriteString(`<div class="block-audio__meta">`)
	element(b, "span", "block-audio__title", c.Title)
	element(b, "span", "block-audio__file", c.FileName)
	if c.FileSize > 0 {
		element(b, "span", "block-audio__size", models.FormatFileSize(c.FileSize))
	}
	b.WriteString(`</div>`)
	fmt.Fprintf(b, `<audio class="block-audio__player" src="%s" controls preload="metadata"></audio>`, src)
	if layout == LayoutTranscript {
		transcript(b, "block-audio__transcript", c.Transcript)
	}
}

func transcript(b *strings.Builder, class, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, `<details class="%s"><summary>Transcript</summary>`, class)
	for _, para := range strings.Split(strings.TrimSpace(text), "\n\n") {
		element(b, "p", class+"-text", strings.TrimSpace(para))
	}
	b.WriteString(`</details>`)
}

// YouTubeVideoID returns the video id of c, parsing URL when VideoID is
// empty. It understands watch, embed, shorts and youtu.be links.
func YouTubeVideoID(c *YouTubeContent) string {
	if youTubeID.MatchString(c.VideoID) {
		return c.VideoID
	}
	u, err := url.Parse(strings.TrimSpace(c.URL))
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			id = v
			break
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live") {
			id = segments[1]
		}
	}
	if !youTubeID.MatchString(id) {
		return ""
	}
	return id
}

func renderYouTube(b *strings.Builder, layout Layout, c *YouTubeContent) {
	title := c.Title
	if title == "" {
		title = "YouTube video"
	}
	b.WriteString(`<div class="block-youtube__frame">`)
	if id := YouTubeVideoID(c); id != "" {
		fmt.Fprintf(b, `<iframe src="https://www.youtube-nocookie.com/embed/%s" title="%s" loading="lazy" allow="accelerometer; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe>`,
			id, esc(title))
	} else {
		fmt.Fprintf(b, `<div class="block-youtube__placeholder" role="img" aria-label="%s"></div>`, esc(title))
	}
	b.WriteString(`</div>`)
	if layout == LayoutCaptioned {
		element(b, "p", "block-youtube__caption", c.Caption)
	}
}

func renderLink(b *strings.Builder, layout Layout, c *LinkContent) {
	href := safeURL(c.URL)
	if href == "" {
		href = "#"
	}
	label := c.Title
	if label == "" {
		label = c.URL
	}

	switch layout {
	case LayoutButton:
		fmt.Fprintf(b, `<a class="block-link__button" href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, esc(label))
	case LayoutInline:
		fmt.Fprintf(b, `<p class="block-link__inline"><a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, esc(label))
		if c.Description != "" {
			b.WriteString(`: ` + esc(c.Description))
		}
		b.WriteString(`</p>`)
	default:
		fmt.Fprintf(b, `<a class="block-link__card" href="%s" target="_blank" rel="noopener noreferrer">`, href)
		element(b, "span", "block-link__title", label)
		element(b, "span", "block-link__description", c.Description)
		if u, err := url.Parse(c.URL); err == nil && u.Host != "" {
			element(b, "span", "block-link__host", u.Host)
		}
		b.WriteString(`</a>`)
	}
}

func renderPDF(b *strings.Builder, layout Layout, c *PDFContent) {
	src := safeURL(c.PDFURL)
	name := c.FileName
	if name == "" {
		name = c.Title
	}
	if name == "" {
		name = "document.pdf"
	}

	if layout == LayoutEmbed {
		element(b, "h3", "block-pdf__title", c.Title)
		fmt.Fprintf(b, `<iframe class="block-pdf__viewer" src="%s" title="%s" loading="lazy"></iframe>`, src, esc(name))
	}

	b.WriteString(`<div class="block-pdf__file">`)
	if layout == LayoutDownload {
		element(b, "strong", "block-pdf__title", c.Title)
	}
	element(b, "span", "block-pdf__name", name)
	if c.FileSize > 0 {
		element(b, "span", "block-pdf__size", models.FormatFileSize(c.FileSize))
	}
	fmt.Fprintf(b, `<a class="block-pdf__download" href="%s" download>Download</a>`, src)
	b.WriteString(`</div>`)
}
