// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"lessonpress/internal/cache"
	"lessonpress/internal/media"
	"lessonpress/internal/models"
)

// Uploads accepts media files for image, audio, video and PDF blocks and
// serves the previews of files that could not reach object storage.
type Uploads struct {
	uploader *media.Uploader
	previews *cache.PreviewStore
	maxBytes int64
}

// NewUploads creates the upload handler group. previews may be nil, in
// which case preview URLs are never served.
func NewUploads(uploader *media.Uploader, previews *cache.PreviewStore, maxBytes int64) *Uploads {
	if maxBytes <= 0 {
		maxBytes = 25 << 20
	}
	return &Uploads{uploader: uploader, previews: previews, maxBytes: maxBytes}
}

// Upload handles a multipart form with a "kind" field and a "file" part.
// A storage outage still yields 200 with success=false and a preview URL.
func (h *Uploads) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1024)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Maximum size is %s.", models.FormatFileSize(h.maxBytes)))
		return
	}

	kind, err := media.ParseKind(r.FormValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Kind must be one of image, audio, video or pdf.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	res, err := h.uploader.Upload(r.Context(), kind, header.Filename, detectContentType(data, header.Header.Get("Content-Type")), data)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrEmptyFile):
			writeError(w, http.StatusBadRequest, "File is empty.")
		case errors.Is(err, media.ErrContentType):
			writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("This file type cannot be used as %s.", kind))
		default:
			slog.Error("upload failed", "file", header.Filename, "error", err)
			writeError(w, http.StatusServiceUnavailable, "Upload storage is unavailable.")
		}
		return
	}

	slog.Info("file uploaded", "kind", kind, "file", res.FileName, "size", res.FileSize, "stored", res.Success)
	writeJSON(w, http.StatusOK, res)
}

// detectContentType sniffs data and falls back to the declared type only
// for opaque binary data. Text and markup never take the declared type.
func detectContentType(data []byte, declared string) string {
	sniffed := mimetype.Detect(data).String()
	if sniffed != "application/octet-stream" {
		return sniffed
	}
	if declared != "" {
		return declared
	}
	return sniffed
}

// Preview serves a file kept in the preview store. Only types accepted for
// upload are served inline.
func (h *Uploads) Preview(w http.ResponseWriter, r *http.Request) {
	if h.previews == nil {
		http.NotFound(w, r)
		return
	}
	data, contentType, found, err := h.previews.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		slog.Error("preview lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	if !media.Servable(contentType) {
		contentType = "application/octet-stream"
		w.Header().Set("Content-Disposition", "attachment")
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Security-Policy", "sandbox")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(data)
}
