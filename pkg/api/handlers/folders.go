package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/models"
)

// FolderHandler handles folder hierarchy API endpoints.
type FolderHandler struct {
	folders *drive.FolderService
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(folders *drive.FolderService) *FolderHandler {
	return &FolderHandler{folders: folders}
}

// CreateFolderRequest is the request body for POST /api/v1/folders.
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// List handles GET /api/v1/folders.
// Returns all folders belonging to the authenticated owner.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	folders, err := h.folders.List(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if folders == nil {
		folders = []*models.Folder{}
	}

	WriteJSONOK(w, folders)
}

// Create handles POST /api/v1/folders.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	var req CreateFolderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	folder, err := h.folders.Create(r.Context(), owner, req.Name, req.ParentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSONCreated(w, folder)
}

// Delete handles DELETE /api/v1/folders/{folderID}.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerFromContext(w, r)
	if !ok {
		return
	}

	folderID := chi.URLParam(r, "folderID")
	if err := h.folders.Delete(r.Context(), owner, folderID); err != nil {
		writeDomainError(w, err)
		return
	}

	WriteNoContent(w)
}
