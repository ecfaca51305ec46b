// Package store provides the metadata persistence layer for Cubby.
//
// This package implements the Store interface for managing users, folders,
// and file records. Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (for deployments that need a networked database)
//
// Owner scoping:
// Every folder and file query issued by this package goes through a single
// owner-scoped query builder (see helpers.go). The database performs no
// authorization of its own, so the owner equality filter is load-bearing:
// it is applied structurally in one place rather than re-specified at each
// call site.
package store

import (
	"context"

	"github.com/cubbyhole/cubby/pkg/models"
)

// UserStore manages user accounts.
type UserStore interface {
	// CreateUser inserts a new user and returns its assigned id.
	// Returns models.ErrDuplicateUser if the username is taken.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// GetUser retrieves a user by username.
	// Returns models.ErrUserNotFound if no such user exists.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// DeleteUser removes a user by username.
	DeleteUser(ctx context.Context, username string) error

	// ValidateCredentials checks a username/password pair.
	// Returns models.ErrInvalidCredentials if the pair does not match.
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// UpdateLastLogin records the time of a successful login.
	UpdateLastLogin(ctx context.Context, username string) error
}

// FolderStore manages folder metadata for the hierarchy manager.
// All operations are scoped to the given owner.
type FolderStore interface {
	// CreateFolder inserts a new folder and returns its assigned id.
	// The folder's Owner field must be stamped by the caller.
	CreateFolder(ctx context.Context, folder *models.Folder) (string, error)

	// GetFolder retrieves a folder by id, scoped to owner.
	// Returns models.ErrFolderNotFound if absent or owned by someone else.
	GetFolder(ctx context.Context, owner, id string) (*models.Folder, error)

	// ListFolders returns all folders for owner, created_at ascending.
	ListFolders(ctx context.Context, owner string) ([]*models.Folder, error)

	// DeleteFolder removes a folder in a single delete scoped by both id
	// and owner. Returns models.ErrFolderNotFound if nothing matched.
	// Emptiness is NOT checked here; the drive layer checks first.
	DeleteFolder(ctx context.Context, owner, id string) error

	// HasChildFolders reports whether any folder has the given id as parent.
	HasChildFolders(ctx context.Context, owner, id string) (bool, error)
}

// FileFilter restricts a file listing.
type FileFilter struct {
	// FolderID selects files in an exact folder. Empty means no folder
	// restriction. Ignored when RootOnly is set.
	FolderID string

	// RootOnly selects files with no folder membership.
	RootOnly bool

	// NameContains is a case-insensitive substring match on the file name.
	// Empty means no name restriction.
	NameContains string
}

// FileStore manages file metadata records for the record coordinator.
// All operations are scoped to the given owner.
type FileStore interface {
	// CreateFile inserts a new file record and returns its assigned id.
	CreateFile(ctx context.Context, file *models.File) (string, error)

	// GetFile retrieves a file record by id, scoped to owner.
	// Returns models.ErrFileNotFound if absent or owned by someone else.
	GetFile(ctx context.Context, owner, id string) (*models.File, error)

	// ListFiles returns file records for owner matching the filter, ordered
	// by upload_date descending. Filtering happens in the database, not in
	// memory.
	ListFiles(ctx context.Context, owner string, filter FileFilter) ([]*models.File, error)

	// RenameFile atomically updates only the name of the record matching id
	// and owner, returning the updated record.
	// Returns models.ErrFileNotFound if nothing matched.
	RenameFile(ctx context.Context, owner, id, newName string) (*models.File, error)

	// DeleteFile removes a file record scoped by id and owner.
	// Returns models.ErrFileNotFound if nothing matched.
	DeleteFile(ctx context.Context, owner, id string) error

	// CountFilesInFolder returns the number of file records attached to the
	// given folder for owner.
	CountFilesInFolder(ctx context.Context, owner, folderID string) (int64, error)
}

// Store is the full metadata store consumed by the drive and API layers.
type Store interface {
	UserStore
	FolderStore
	FileStore

	// Ping verifies database connectivity (used by readiness probes).
	Ping(ctx context.Context) error

	// Close releases the underlying database connection.
	Close() error
}
