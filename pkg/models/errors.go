package models

import "errors"

// Common errors for drive and identity operations.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Folder errors
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderNotEmpty = errors.New("folder is not empty")

	// File errors
	ErrFileNotFound = errors.New("file not found")

	// Argument errors
	ErrInvalidID = errors.New("malformed identifier")
	ErrEmptyName = errors.New("name must not be empty")

	// Insert errors
	ErrDuplicateID = errors.New("identifier already in use")
)
