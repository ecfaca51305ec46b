// Package models defines the persistent entities of the Cubby drive service
// and the sentinel errors shared across the store, drive, and API layers.
package models

// AllModels returns every model for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&User{},
		&Folder{},
		&File{},
	}
}
