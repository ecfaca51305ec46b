package drive

import (
	"context"
	"fmt"
	"strings"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/models"
	"github.com/cubbyhole/cubby/pkg/store"
)

// FolderService manages the folder hierarchy for each owner.
type FolderService struct {
	store store.Store
}

// NewFolderService creates a folder service backed by the given store.
func NewFolderService(s store.Store) *FolderService {
	return &FolderService{store: s}
}

// List returns all folders belonging to owner, oldest first.
func (svc *FolderService) List(ctx context.Context, owner string) ([]*models.Folder, error) {
	return svc.store.ListFolders(ctx, owner)
}

// Create adds a folder under parentID (nil for root level).
//
// The parent existence check and the insert are two steps with no
// transaction between them: a parent deleted concurrently can leave the new
// folder orphaned. Owners only race themselves here, so this is accepted.
func (svc *FolderService) Create(ctx context.Context, owner, name string, parentID *string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrEmptyName
	}

	if parentID != nil {
		if err := validateID(*parentID); err != nil {
			return nil, err
		}
		if _, err := svc.store.GetFolder(ctx, owner, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &models.Folder{
		Name:     name,
		ParentID: parentID,
		Owner:    owner,
	}
	if _, err := svc.store.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	logger.DebugCtx(ctx, "folder created", "folder_id", folder.ID, "name", folder.Name)
	return folder, nil
}

// Delete removes an empty folder.
//
// Emptiness is shallow: only direct child folders and directly attached
// files block deletion. The emptiness checks and the delete are not atomic;
// the delete itself is a single statement scoped by id and owner.
func (svc *FolderService) Delete(ctx context.Context, owner, folderID string) error {
	if err := validateID(folderID); err != nil {
		return err
	}

	if _, err := svc.store.GetFolder(ctx, owner, folderID); err != nil {
		return err
	}

	hasChildren, err := svc.store.HasChildFolders(ctx, owner, folderID)
	if err != nil {
		return fmt.Errorf("failed to check child folders: %w", err)
	}
	if hasChildren {
		return models.ErrFolderNotEmpty
	}

	fileCount, err := svc.store.CountFilesInFolder(ctx, owner, folderID)
	if err != nil {
		return fmt.Errorf("failed to count folder files: %w", err)
	}
	if fileCount > 0 {
		return models.ErrFolderNotEmpty
	}

	if err := svc.store.DeleteFolder(ctx, owner, folderID); err != nil {
		return err
	}

	logger.DebugCtx(ctx, "folder deleted", "folder_id", folderID)
	return nil
}
