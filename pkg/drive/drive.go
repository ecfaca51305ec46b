// Package drive implements the core Cubby semantics: the folder hierarchy
// and the coordination between file metadata records and blob content.
//
// The two stores are independent systems with no shared transaction. The
// coordinator sequences writes so that failures leave at worst an orphaned
// blob (invisible to users) and never a metadata record without content.
package drive

import (
	"errors"

	"github.com/google/uuid"

	"github.com/cubbyhole/cubby/pkg/models"
)

// ErrStorage indicates the blob store failed while handling content.
var ErrStorage = errors.New("blob storage operation failed")

// validateID checks that id is a well-formed identifier before it reaches
// the database. Malformed ids can never match a record, so they are rejected
// up front as client errors rather than reported as not-found.
func validateID(id string) error {
	if uuid.Validate(id) != nil {
		return models.ErrInvalidID
	}
	return nil
}
