package store

import (
	"context"
	"time"

	"github.com/cubbyhole/cubby/pkg/models"
)

func (s *GORMStore) CreateFolder(ctx context.Context, folder *models.Folder) (string, error) {
	folder.CreatedAt = time.Now()
	return createWithID(s.db, ctx, folder, folder.ID,
		func(f *models.Folder, id string) { f.ID = id },
		models.ErrDuplicateID)
}

func (s *GORMStore) GetFolder(ctx context.Context, owner, id string) (*models.Folder, error) {
	return getOne[models.Folder](
		s.scoped(ctx, owner).Where("id = ?", id),
		models.ErrFolderNotFound,
	)
}

func (s *GORMStore) ListFolders(ctx context.Context, owner string) ([]*models.Folder, error) {
	var folders []*models.Folder
	if err := s.scoped(ctx, owner).Order("created_at ASC").Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (s *GORMStore) DeleteFolder(ctx context.Context, owner, id string) error {
	return deleteScoped[models.Folder](
		s.scoped(ctx, owner).Where("id = ?", id),
		models.ErrFolderNotFound,
	)
}

func (s *GORMStore) HasChildFolders(ctx context.Context, owner, id string) (bool, error) {
	var count int64
	err := s.scoped(ctx, owner).
		Model(&models.Folder{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
