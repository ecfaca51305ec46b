package models

import "time"

// RootFolder is the sentinel folder id accepted by file listing to select
// files that sit at the root (no folder membership). It is never a real
// folder identifier: real ids are UUIDs.
const RootFolder = "root"

// File is the metadata record for a stored file.
//
// The binary content lives in the blob store under ObjectKey; the record and
// the object form a pair that the drive coordinator keeps consistent. While
// the record exists its ObjectKey must reference exactly one live object.
//
// Files are always leaves: FolderID either references a folder owned by the
// same owner or is nil for root-level files.
type File struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Size       int64     `gorm:"not null" json:"size"`
	MimeType   string    `gorm:"size:255" json:"mime_type"`
	UploadDate time.Time `gorm:"index" json:"upload_date"`
	ObjectKey  string    `gorm:"not null;size:512" json:"-"`
	FolderID   *string   `gorm:"size:36;index" json:"folder_id,omitempty"`
	Owner      string    `gorm:"not null;size:255;index" json:"owner"`
}

// TableName returns the table name for File.
func (File) TableName() string {
	return "files"
}
