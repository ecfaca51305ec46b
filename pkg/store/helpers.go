package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ============================================================================
// Owner scoping
// ============================================================================

// scoped returns a query builder with the owner equality filter pre-applied.
//
// Every folder and file query in this package MUST start from scoped; this is
// the single structural enforcement point for per-owner isolation. A query
// built any other way would read or mutate across tenants.
func (s *GORMStore) scoped(ctx context.Context, owner string) *gorm.DB {
	return s.db.WithContext(ctx).Where("owner = ?", owner)
}

// ============================================================================
// Generic GORM helpers
// ============================================================================
//
// These helpers reduce repetitive CRUD boilerplate across store implementation
// files. They are unexported and operate on a prepared *gorm.DB so they can be
// combined with scoped().

// getOne retrieves a single record of type T from a prepared query, converting
// gorm.ErrRecordNotFound to the provided notFoundErr for consistent domain
// error mapping.
func getOne[T any](q *gorm.DB, notFoundErr error) (*T, error) {
	var result T
	if err := q.First(&result).Error; err != nil {
		return nil, convertNotFoundError(err, notFoundErr)
	}
	return &result, nil
}

// createWithID generates a UUID for the entity if it has no ID, then creates
// it in the database. Unique constraint violations are converted to dupErr.
func createWithID[T any](db *gorm.DB, ctx context.Context, entity *T, currentID string, idSetter func(*T, string), dupErr error) (string, error) {
	id := currentID
	if id == "" {
		id = uuid.New().String()
		idSetter(entity, id)
	}
	if err := db.WithContext(ctx).Create(entity).Error; err != nil {
		if isUniqueConstraintError(err) {
			return "", dupErr
		}
		return "", err
	}
	return id, nil
}

// deleteScoped deletes records of type T matching the prepared query.
// Returns notFoundErr if no rows were affected.
func deleteScoped[T any](q *gorm.DB, notFoundErr error) error {
	var zero T
	result := q.Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}

// isUniqueConstraintError checks if the error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// SQLite or PostgreSQL unique constraint errors
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "duplicate key value violates unique constraint")
}

// convertNotFoundError converts gorm.ErrRecordNotFound to the appropriate domain error.
func convertNotFoundError(err error, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}
