package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cubbyhole/cubby/pkg/api/middleware"
	"github.com/cubbyhole/cubby/pkg/drive"
	"github.com/cubbyhole/cubby/pkg/models"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// ownerFromContext extracts the authenticated owner from the request.
// Returns "" and writes 401 if the request carries no claims.
func ownerFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return "", false
	}
	return claims.Username, true
}

// writeDomainError maps a drive/store error to its problem response.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		BadRequest(w, "Malformed identifier")
	case errors.Is(err, models.ErrEmptyName):
		BadRequest(w, "Name must not be empty")
	case errors.Is(err, models.ErrFolderNotFound):
		NotFound(w, "Folder not found")
	case errors.Is(err, models.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, models.ErrFolderNotEmpty):
		Conflict(w, "Folder is not empty")
	case errors.Is(err, drive.ErrStorage):
		InternalServerError(w, "Storage unavailable")
	default:
		InternalServerError(w, "Internal error")
	}
}
