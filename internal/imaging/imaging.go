// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded images and renders downscaled JPEG
// variants for lesson image blocks. It is pure Go (golang.org/x/image) and
// reads PNG, JPEG, GIF, WebP, BMP and TIFF sources. Variants never upscale.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the decoded size of a source image.
const MaxPixels = 40_000_000

// ErrTooLarge is returned for images above MaxPixels.
var ErrTooLarge = errors.New("imaging: image dimensions too large")

// Variant describes a single downscaled image size.
type Variant struct {
	Name    string // e.g., "thumb", "md"
	Width   int    // Target width in pixels
	Quality int    // JPEG quality 1-100
}

// DefaultVariants defines the sizes generated for every uploaded image.
var DefaultVariants = []Variant{
	{Name: "thumb", Width: 320, Quality: 75},
	{Name: "md", Width: 1024, Quality: 82},
}

// Info is the result of probing an image without decoding its pixels.
type Info struct {
	Width  int
	Height int
	Format string // "png", "jpeg", "gif", "webp", ...
}

// ProcessedImage holds one generated variant ready for upload.
type ProcessedImage struct {
	Name        string
	Width       int
	Height      int
	Data        []byte
	ContentType string // Always "image/jpeg"
}

// Inspect reads the header of data and reports its dimensions and format.
func Inspect(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("imaging: decode config failed: %w", err)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return Info{}, ErrTooLarge
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// GenerateVariants creates JPEG variants of the source image for each
// configured width. Widths at or above the original produce one variant at
// the original size, after which larger variants are skipped.
func GenerateVariants(original []byte, variants []Variant) ([]ProcessedImage, error) {
	if len(variants) == 0 {
		variants = DefaultVariants
	}
	if _, err := Inspect(original); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	bounds := src.Bounds()
	origWidth := bounds.Dx()

	var results []ProcessedImage
	for _, v := range variants {
		targetWidth := min(v.Width, origWidth)
		img := Resize(src, targetWidth)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: v.Quality}); err != nil {
			return nil, fmt.Errorf("imaging: encode %s: %w", v.Name, err)
		}

		results = append(results, ProcessedImage{
			Name:        v.Name,
			Width:       img.Bounds().Dx(),
			Height:      img.Bounds().Dy(),
			Data:        buf.Bytes(),
			ContentType: "image/jpeg",
		})

		if origWidth <= v.Width {
			break
		}
	}

	return results, nil
}

// Resize scales src to width, keeping the aspect ratio, onto an opaque white
// canvas so transparent sources encode cleanly as JPEG.
func Resize(src image.Image, width int) *image.RGBA {
	b := src.Bounds()
	if width <= 0 || b.Dx() == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	height := max(1, b.Dy()*width/b.Dx())

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
