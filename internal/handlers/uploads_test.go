// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lessonpress/internal/cache"
	"lessonpress/internal/media"
)

type stubObjects struct {
	keys []string
	fail error
}

func (s *stubObjects) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if s.fail != nil {
		return s.fail
	}
	_, err := io.Copy(io.Discard, body)
	s.keys = append(s.keys, key)
	return err
}

func (s *stubObjects) FileURL(key string) string { return "https://cdn.test/" + key }
func (s *stubObjects) Bucket() string            { return "media" }

type stubPreviews struct{}

func (stubPreviews) Put(context.Context, string, []byte) (string, error) {
	return "6f9619ff-8b86-d011-b42d-00cf4fc964ff", nil
}

// multipartRequest builds a POST /api/uploads request. An empty fileName
// omits the file part.
func multipartRequest(t *testing.T, kind, fileName string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if kind != "" {
		mw.WriteField("kind", kind)
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	mp3 := append([]byte("ID3\x03\x00\x00\x00"), bytes.Repeat([]byte{0}, 2048)...)
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

	tests := []struct {
		name        string
		kind        string
		fileName    string
		data        []byte
		objects     media.ObjectStore
		wantStatus  int
		wantSuccess bool
		wantURL     string
	}{
		{
			name:        "audio stored",
			kind:        "audio",
			fileName:    "Lecture 1.mp3",
			data:        mp3,
			objects:     &stubObjects{},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantURL:     "https://cdn.test/media/audio/2026/10/",
		},
		{
			name:        "pdf kept as preview when storage fails",
			kind:        "pdf",
			fileName:    "notes.pdf",
			data:        pdf,
			objects:     &stubObjects{fail: errors.New("s3 down")},
			wantStatus:  http.StatusOK,
			wantSuccess: false,
			wantURL:     media.PreviewPathPrefix,
		},
		{
			name:       "unknown kind",
			kind:       "spreadsheet",
			fileName:   "a.csv",
			data:       []byte("a,b"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing file",
			kind:       "image",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong type for kind",
			kind:       "image",
			fileName:   "notes.pdf",
			data:       pdf,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "svg with script",
			kind:       "image",
			fileName:   "diagram.svg",
			data:       []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`),
			objects:    &stubObjects{},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "html page as image",
			kind:       "image",
			fileName:   "cat.png",
			data:       []byte("<html><body><script>alert(1)</script></body></html>"),
			objects:    &stubObjects{},
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "empty file",
			kind:       "pdf",
			fileName:   "empty.pdf",
			data:       nil,
			wantStatus: http.StatusBadRequest,
		},
	}

	now := func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := media.NewUploader(tt.objects, stubPreviews{}, nil, media.WithClock(now))
			h := NewUploads(uploader, nil, 1<<20)

			rec := httptest.NewRecorder()
			h.Upload(rec, multipartRequest(t, tt.kind, tt.fileName, tt.data))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var res media.Result
			decodeResponse(t, rec, &res)
			if res.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", res.Success, tt.wantSuccess)
			}
			if !strings.HasPrefix(res.URL, tt.wantURL) {
				t.Errorf("url = %q, want prefix %q", res.URL, tt.wantURL)
			}
			if res.FileSize != int64(len(tt.data)) || res.FileSizeLabel == "" {
				t.Errorf("file size = %d (%q)", res.FileSize, res.FileSizeLabel)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	h := NewUploads(media.NewUploader(nil, stubPreviews{}, nil), nil, 1024)
	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "pdf", "big.pdf", bytes.Repeat([]byte("x"), 8192)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		want     string
	}{
		{"sniffed png", []byte("\x89PNG\r\n\x1a\n0000"), "application/octet-stream", "image/png"},
		{"sniffed pdf", []byte("%PDF-1.4"), "", "application/pdf"},
		{"declared wins over octet-stream", []byte{0x00, 0x01, 0x02}, "video/mp4", "video/mp4"},
		{"nothing declared", []byte{0x00, 0x01, 0x02}, "", "application/octet-stream"},
		{"svg is recognised", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`), "image/png", "image/svg+xml"},
		{"text ignores declared image", []byte("just some notes"), "image/png", "text/plain; charset=utf-8"},
		{"sniffed mp3", append([]byte("ID3\x03\x00\x00\x00"), make([]byte, 64)...), "", "audio/mpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.data, tt.declared); got != tt.want {
				t.Errorf("detectContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewServing(t *testing.T) {
	t.Run("no preview store", func(t *testing.T) {
		h := NewUploads(nil, nil, 0)
		rec := httptest.NewRecorder()
		h.Preview(rec, withChiURLParams(httptest.NewRequest(http.MethodGet, "/media/preview/x", nil), "key", "x"))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("stored script is not served inline", func(t *testing.T) {
		previews := cache.NewPreviewStore(testValkeyClient(t), time.Minute)
		key, err := previews.Put(context.Background(), "image/svg+xml", []byte("<svg><script>alert(1)</script></svg>"))
		if err != nil {
			t.Fatalf("Put: %v", err)
		}

		h := NewUploads(nil, previews, 0)
		rec := httptest.NewRecorder()
		h.Preview(rec, withChiURLParams(httptest.NewRequest(http.MethodGet, "/media/preview/"+key, nil), "key", key))

		if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
			t.Errorf("Content-Type = %q, want application/octet-stream", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != "attachment" {
			t.Errorf("Content-Disposition = %q, want attachment", cd)
		}
		if csp := rec.Header().Get("Content-Security-Policy"); csp != "sandbox" {
			t.Errorf("Content-Security-Policy = %q, want sandbox", csp)
		}
	})

	t.Run("round trip through valkey", func(t *testing.T) {
		previews := cache.NewPreviewStore(testValkeyClient(t), time.Minute)
		key, err := previews.Put(context.Background(), "application/pdf", []byte("%PDF-1.4 preview"))
		if err != nil {
			t.Fatalf("Put: %v", err)
		}

		h := NewUploads(nil, previews, 0)
		rec := httptest.NewRecorder()
		h.Preview(rec, withChiURLParams(httptest.NewRequest(http.MethodGet, "/media/preview/"+key, nil), "key", key))

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Content-Type = %q", ct)
		}
		if rec.Header().Get("Content-Disposition") != "" {
			t.Error("allowed types should be served inline")
		}
		if rec.Body.String() != "%PDF-1.4 preview" {
			t.Errorf("body = %q", rec.Body.String())
		}

		rec = httptest.NewRecorder()
		missing := "00000000-0000-0000-0000-000000000000"
		h.Preview(rec, withChiURLParams(httptest.NewRequest(http.MethodGet, "/media/preview/"+missing, nil), "key", missing))
		if rec.Code != http.StatusNotFound {
			t.Errorf("missing preview: got %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
