package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/models"
)

// maxUploadMemory bounds the multipart form parser's in-memory buffer.
// Larger file parts spill to temporary files.
const maxUploadMemory = 32 << 20 // 32MB

// maxUploadBytes caps the total upload request body.
const maxUploadBytes = 1 << 30 // 1GB

// FileHandler handles file API endpoints.
type FileHandler struct {
	files *drive.FileService

	// maxBody caps the upload request body.
	maxBody int64
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files *drive.FileService) *FileHandler {
	return &FileHandler{files: files, maxBody: maxUploadBytes}
}

// RenameFileRequest is the request body for PUT /api/v1/files/{fileID}.
type RenameFileRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/v1/files?folder_id=&name=.
//
// folder_id narrows the listing: absent means all files, "root" selects
// files outside any folder, otherwise it must be a folder id. name is a
// case-insensitive substring filter.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	folderID := r.URL.Query().Get("folder_id")
	nameFilter := r.URL.Query().Get("name")

	files, err := h.files.List(r.Context(), owner, folderID, nameFilter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if files == nil {
		files = []*models.File{}
	}

	WriteJSONOK(w, files)
}

// Upload handles POST /api/v1/files.
//
// Expects a multipart form with a "file" part and an optional "folder_id"
// field.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteProblem(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large",
				fmt.Sprintf("Upload exceeds the %d byte limit", tooLarge.Limit))
			return
		}
		BadRequest(w, "Invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.WarnCtx(r.Context(), "failed to clean up multipart temp files", "error", err)
		}
	}()

	part, header, err := r.FormFile("file")
	if err != nil {
		BadRequest(w, "Missing file part")
		return
	}
	defer part.Close()

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	mimeType := header.Header.Get("Content-Type")

	file, err := h.files.Upload(r.Context(), owner, header.Filename, part, mimeType, folderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSONCreated(w, file)
}

// Download handles GET /api/v1/files/{fileID}/download.
// Streams the file content with Content-Disposition for browser downloads.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	fileID := chi.URLParam(r, "fileID")
	file, rc, err := h.files.Download(r.Context(), owner, fileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer rc.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already sent; all we can do is log.
		logger.WarnCtx(r.Context(), "download stream interrupted",
			"file_id", file.ID, "error", err)
	}
}

// Rename handles PUT /api/v1/files/{fileID}.
func (h *FileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var req RenameFileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	fileID := chi.URLParam(r, "fileID")
	file, err := h.files.Rename(r.Context(), owner, fileID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSONOK(w, file)
}

// Delete handles DELETE /api/v1/files/{fileID}.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	fileID := chi.URLParam(r, "fileID")
	if err := h.files.Delete(r.Context(), owner, fileID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteNoContent(w)
}
