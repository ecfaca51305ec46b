package models

import "time"

// Folder is a node in a per-owner folder hierarchy.
//
// A nil ParentID means the folder sits at the root. A non-nil ParentID always
// references a folder owned by the same owner; parents must exist before
// children reference them, so no cycle can ever be created (folders are never
// re-parented after creation).
type Folder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id,omitempty"`
	Owner     string    `gorm:"not null;size:255;index" json:"owner"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Folder.
func (Folder) TableName() string {
	return "folders"
}

// IsRoot reports whether the folder sits at the top level.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
