// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media handles uploads for image, audio, video and pdf blocks.
// Files go to S3-compatible storage and are recorded in the media table.
// When storage is missing or fails, the bytes are parked in a short-lived
// preview store instead so the editor can keep working with a local URL.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"lessonpress/internal/imaging"
	"lessonpress/internal/models"
	"lessonpress/internal/storage"
)

// PreviewPathPrefix is the route that serves fallback previews.
const PreviewPathPrefix = "/media/preview/"

var (
	// ErrUnsupportedKind is returned for an unknown upload kind.
	ErrUnsupportedKind = errors.New("media: unsupported upload kind")
	// ErrContentType is returned when the file type does not match the kind.
	ErrContentType = errors.New("media: content type not allowed for this kind")
	// ErrEmptyFile is returned for zero-byte uploads.
	ErrEmptyFile = errors.New("media: file is empty")
	// ErrUnavailable is returned when neither storage nor the preview store
	// accepted the file.
	ErrUnavailable = errors.New("media: upload storage unavailable")
)

// ObjectStore is the subset of storage.Client the uploader needs.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
	Bucket() string
}

// PreviewStore holds bytes that could not be persisted.
type PreviewStore interface {
	Put(ctx context.Context, contentType string, data []byte) (string, error)
}

// Recorder persists metadata about stored files.
type Recorder interface {
	Create(m *models.Media) (*models.Media, error)
}

// Result is the upload response consumed by the block editor. Audio uploads
// also carry the URL as AudioURL.
type Result struct {
	Success       bool   `json:"success"`
	URL           string `json:"url"`
	AudioURL      string `json:"audioUrl,omitempty"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	FileName      string `json:"fileName"`
	FileSize      int64  `json:"fileSize"`
	FileSizeLabel string `json:"fileSizeLabel"`
	ContentType   string `json:"contentType"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	MediaID       string `json:"mediaId,omitempty"`
}

// Uploader stores files for lesson blocks.
type Uploader struct {
	objects  ObjectStore
	previews PreviewStore
	records  Recorder
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithClock overrides the time source used for object keys.
func WithClock(now func() time.Time) Option {
	return func(u *Uploader) { u.now = now }
}

// WithLogger sets the logger for storage fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(u *Uploader) { u.logger = l }
}

// NewUploader creates an uploader. objects and records may be nil, in which
// case every upload lands in the preview store.
func NewUploader(objects ObjectStore, previews PreviewStore, records Recorder, opts ...Option) *Uploader {
	u := &Uploader{
		objects:  objects,
		previews: previews,
		records:  records,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ParseKind validates an upload kind from a form field.
func ParseKind(s string) (models.MediaKind, error) {
	switch k := models.MediaKind(strings.ToLower(strings.TrimSpace(s))); k {
	case models.MediaKindImage, models.MediaKindAudio, models.MediaKindVideo, models.MediaKindPDF:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// allowedTypes lists the MIME types accepted for each upload kind. SVG is
// left out because it can carry script and previews are served from our
// own origin.
var allowedTypes = map[models.MediaKind]map[string]bool{
	models.MediaKindImage: {
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	},
	models.MediaKindAudio: {
		"audio/mpeg":      true,
		"audio/mp4":       true,
		"audio/x-m4a":     true,
		"audio/aac":       true,
		"audio/wav":       true,
		"audio/wave":      true,
		"audio/x-wav":     true,
		"audio/ogg":       true,
		"application/ogg": true,
		"audio/webm":      true,
		"audio/flac":      true,
	},
	models.MediaKindVideo: {
		"video/mp4":       true,
		"video/webm":      true,
		"video/ogg":       true,
		"video/quicktime": true,
	},
	models.MediaKindPDF: {
		"application/pdf": true,
	},
}

// Allowed reports whether contentType may be uploaded as kind.
func Allowed(kind models.MediaKind, contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	return allowedTypes[kind][ct]
}

// Servable reports whether contentType is accepted for any upload kind.
func Servable(contentType string) bool {
	for kind := range allowedTypes {
		if Allowed(kind, contentType) {
			return true
		}
	}
	return false
}

// Upload stores data and returns the editor response. A storage failure is
// not an error: the file is kept in the preview store and Success is false.
// An error is returned only for invalid input or when the file could not be
// kept anywhere.
func (u *Uploader) Upload(ctx context.Context, kind models.MediaKind, fileName, contentType string, data []byte) (*Result, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if !Allowed(kind, contentType) {
		return nil, fmt.Errorf("%w: %s for %s", ErrContentType, contentType, kind)
	}

	res := &Result{
		FileName:      path.Base(strings.ReplaceAll(fileName, `\`, "/")),
		FileSize:      int64(len(data)),
		FileSizeLabel: models.FormatFileSize(int64(len(data))),
		ContentType:   contentType,
	}

	var info imaging.Info
	if kind == models.MediaKindImage {
		if inspected, err := imaging.Inspect(data); err == nil {
			info = inspected
			res.Width, res.Height = info.Width, info.Height
		} else {
			u.logger.Debug("image inspection failed", "file", fileName, "error", err)
		}
	}

	if u.objects != nil {
		err := u.store(ctx, kind, fileName, contentType, data, info, res)
		if err == nil {
			res.Success = true
			u.setURL(kind, res, res.URL)
			return res, nil
		}
		u.logger.Warn("upload to storage failed, keeping preview", "file", fileName, "error", err)
	}

	return u.fallback(ctx, kind, contentType, data, res)
}

// store uploads the original and, for inspected images, a JPEG thumbnail.
func (u *Uploader) store(ctx context.Context, kind models.MediaKind, fileName, contentType string, data []byte, info imaging.Info, res *Result) error {
	key := storage.ObjectKey(string(kind), u.now(), fileName)
	if err := u.objects.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return err
	}
	res.URL = u.objects.FileURL(key)

	var thumbKey *string
	if info.Width > 0 {
		if k, err := u.storeThumbnail(ctx, key, data); err != nil {
			u.logger.Warn("thumbnail generation failed", "key", key, "error", err)
		} else {
			thumbKey = &k
			res.ThumbnailURL = u.objects.FileURL(k)
		}
	}

	if u.records == nil {
		return nil
	}
	m, err := u.records.Create(&models.Media{
		Kind:         kind,
		Filename:     path.Base(key),
		OriginalName: res.FileName,
		ContentType:  contentType,
		SizeBytes:    res.FileSize,
		Bucket:       u.objects.Bucket(),
		S3Key:        key,
		ThumbS3Key:   thumbKey,
		Width:        info.Width,
		Height:       info.Height,
	})
	if err != nil {
		u.logger.Warn("failed to record media", "key", key, "error", err)
		return nil
	}
	res.MediaID = m.ID.String()
	return nil
}

func (u *Uploader) storeThumbnail(ctx context.Context, key string, data []byte) (string, error) {
	variants, err := imaging.GenerateVariants(data, imaging.DefaultVariants[:1])
	if err != nil {
		return "", err
	}
	thumb := variants[0]
	thumbKey := strings.TrimSuffix(key, path.Ext(key)) + "-" + thumb.Name + ".jpg"
	err = u.objects.Upload(ctx, thumbKey, thumb.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data)))
	if err != nil {
		return "", err
	}
	return thumbKey, nil
}

func (u *Uploader) fallback(ctx context.Context, kind models.MediaKind, contentType string, data []byte, res *Result) (*Result, error) {
	res.Success = false
	res.ThumbnailURL = ""
	res.MediaID = ""
	if u.previews == nil {
		return res, ErrUnavailable
	}
	key, err := u.previews.Put(ctx, contentType, data)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	u.setURL(kind, res, PreviewPathPrefix+key)
	return res, nil
}

func (u *Uploader) setURL(kind models.MediaKind, res *Result, url string) {
	res.URL = url
	if kind == models.MediaKindAudio {
		res.AudioURL = url
	}
}
