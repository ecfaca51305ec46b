package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cubbyhole/cubby/pkg/api/auth"
	"github.com/cubbyhole/cubby/pkg/api/middleware"
	"github.com/cubbyhole/cubby/pkg/blob/memory"
	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/store"
)

func newTestFileHandler(t *testing.T) *FileHandler {
	t.Helper()

	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewFileHandler(drive.NewFileService(s, memory.New()))
}

func multipartUpload(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("part write failed: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("multipart close failed: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadBodyLimit(t *testing.T) {
	h := newTestFileHandler(t)
	h.maxBody = 1024

	doUpload := func(t *testing.T, content []byte) *httptest.ResponseRecorder {
		t.Helper()
		body, contentType := multipartUpload(t, "payload.bin", content)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/files/", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(middleware.WithClaims(req.Context(), &auth.Claims{Username: "alice"}))
		w := httptest.NewRecorder()
		h.Upload(w, req)
		return w
	}

	t.Run("body over the limit is rejected", func(t *testing.T) {
		w := doUpload(t, bytes.Repeat([]byte("x"), 4096))
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want 413", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
			t.Errorf("Content-Type = %q, want %q", ct, ContentTypeProblemJSON)
		}
	})

	t.Run("body under the limit is accepted", func(t *testing.T) {
		w := doUpload(t, []byte("small enough"))
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201, body %s", w.Code, w.Body.String())
		}
	})
}
