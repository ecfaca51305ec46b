package store

import (
	"context"
	"strings"
	"time"

	"github.com/cubbyhole/cubby/pkg/models"
)

func (s *GORMStore) CreateFile(ctx context.Context, file *models.File) (string, error) {
	if file.UploadDate.IsZero() {
		file.UploadDate = time.Now()
	}
	return createWithID(s.db, ctx, file, file.ID,
		func(f *models.File, id string) { f.ID = id },
		models.ErrDuplicateID)
}

func (s *GORMStore) GetFile(ctx context.Context, owner, id string) (*models.File, error) {
	return getOne[models.File](
		s.scoped(ctx, owner).Where("id = ?", id),
		models.ErrFileNotFound,
	)
}

func (s *GORMStore) ListFiles(ctx context.Context, owner string, filter FileFilter) ([]*models.File, error) {
	q := s.scoped(ctx, owner).Model(&models.File{})

	switch {
	case filter.RootOnly:
		q = q.Where("folder_id IS NULL")
	case filter.FolderID != "":
		q = q.Where("folder_id = ?", filter.FolderID)
	}

	if filter.NameContains != "" {
		pattern := "%" + strings.ToLower(filter.NameContains) + "%"
		q = q.Where("LOWER(name) LIKE ?", pattern)
	}

	var files []*models.File
	if err := q.Order("upload_date DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (s *GORMStore) RenameFile(ctx context.Context, owner, id, newName string) (*models.File, error) {
	result := s.scoped(ctx, owner).
		Model(&models.File{}).
		Where("id = ?", id).
		Update("name", newName)

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrFileNotFound
	}

	return s.GetFile(ctx, owner, id)
}

func (s *GORMStore) DeleteFile(ctx context.Context, owner, id string) error {
	return deleteScoped[models.File](
		s.scoped(ctx, owner).Where("id = ?", id),
		models.ErrFileNotFound,
	)
}

func (s *GORMStore) CountFilesInFolder(ctx context.Context, owner, folderID string) (int64, error) {
	var count int64
	err := s.scoped(ctx, owner).
		Model(&models.File{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
