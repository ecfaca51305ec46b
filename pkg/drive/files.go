package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/blob"
	"github.com/cubbyhole/cubby/pkg/models"
	"github.com/cubbyhole/cubby/pkg/store"
)

// FileService coordinates file metadata records with blob content.
type FileService struct {
	store store.Store
	blobs blob.Store
}

// NewFileService creates a file service over the given stores.
func NewFileService(s store.Store, b blob.Store) *FileService {
	return &FileService{store: s, blobs: b}
}

// List returns owner's file records, newest upload first.
//
// folderID narrows the listing: "" means all files, models.RootFolder
// selects files outside any folder, any other value must be a valid folder
// id. nameFilter is a case-insensitive substring match applied in the
// database.
func (svc *FileService) List(ctx context.Context, owner, folderID, nameFilter string) ([]*models.File, error) {
	filter := store.FileFilter{NameContains: nameFilter}

	switch folderID {
	case "":
	case models.RootFolder:
		filter.RootOnly = true
	default:
		if err := validateID(folderID); err != nil {
			return nil, err
		}
		filter.FolderID = folderID
	}

	return svc.store.ListFiles(ctx, owner, filter)
}

// Upload stores content and creates its metadata record.
//
// Write order is blob first, record second. A blob failure leaves no trace.
// A record failure after the blob write leaves an orphaned object: it is
// logged and the upload reported failed, but the object is not rolled back
// (a crash between the two steps would leak it anyway, and orphans are
// invisible to users).
func (svc *FileService) Upload(ctx context.Context, owner, name string, content io.Reader, mimeType string, folderID *string) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyName
	}

	if folderID != nil {
		if err := validateID(*folderID); err != nil {
			return nil, err
		}
		if _, err := svc.store.GetFolder(ctx, owner, *folderID); err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}

	objectKey := uuid.NewString() + "_" + name

	if err := svc.blobs.Put(ctx, objectKey, data, mimeType); err != nil {
		logger.ErrorCtx(ctx, "blob write failed", "object_key", objectKey, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	file := &models.File{
		Name:      name,
		Size:      int64(len(data)),
		MimeType:  mimeType,
		ObjectKey: objectKey,
		FolderID:  folderID,
		Owner:     owner,
	}
	if _, err := svc.store.CreateFile(ctx, file); err != nil {
		logger.ErrorCtx(ctx, "metadata insert failed after blob write, object orphaned",
			"object_key", objectKey, "error", err)
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	logger.DebugCtx(ctx, "file uploaded",
		"file_id", file.ID, "name", file.Name, "size", file.Size)
	return file, nil
}

// Download returns the file record and a reader over its content. The caller
// must close the reader.
//
// A record whose object is missing from the blob store is a consistency
// violation. It is logged and surfaced to the caller as not-found.
func (svc *FileService) Download(ctx context.Context, owner, fileID string) (*models.File, io.ReadCloser, error) {
	if err := validateID(fileID); err != nil {
		return nil, nil, err
	}

	file, err := svc.store.GetFile(ctx, owner, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := svc.blobs.Get(ctx, file.ObjectKey)
	if err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) {
			logger.ErrorCtx(ctx, "file record references missing object",
				"file_id", file.ID, "object_key", file.ObjectKey)
			return nil, nil, models.ErrFileNotFound
		}
		logger.ErrorCtx(ctx, "blob read failed", "object_key", file.ObjectKey, "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return file, rc, nil
}

// Rename changes a file's display name and nothing else. The underlying
// object key is immutable, so no blob operation is involved.
func (svc *FileService) Rename(ctx context.Context, owner, fileID, newName string) (*models.File, error) {
	if err := validateID(fileID); err != nil {
		return nil, err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, models.ErrEmptyName
	}

	return svc.store.RenameFile(ctx, owner, fileID, newName)
}

// Delete removes a file's content and its record, content first.
//
// Blob absence is tolerated so the operation is retryable: a previous
// attempt that removed the object but crashed before the record delete
// completes on retry.
func (svc *FileService) Delete(ctx context.Context, owner, fileID string) error {
	if err := validateID(fileID); err != nil {
		return err
	}

	file, err := svc.store.GetFile(ctx, owner, fileID)
	if err != nil {
		return err
	}

	if err := svc.blobs.Delete(ctx, file.ObjectKey); err != nil {
		logger.ErrorCtx(ctx, "blob delete failed", "object_key", file.ObjectKey, "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := svc.store.DeleteFile(ctx, owner, fileID); err != nil {
		return err
	}

	logger.DebugCtx(ctx, "file deleted", "file_id", fileID)
	return nil
}
