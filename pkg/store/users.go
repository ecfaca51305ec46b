package store

import (
	"context"
	"errors"
	"time"

	"github.com/cubbyhole/cubby/pkg/models"
)

func (s *GORMStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	return getOne[models.User](
		s.db.WithContext(ctx).Where("username = ?", username),
		models.ErrUserNotFound,
	)
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *GORMStore) CreateUser(ctx context.Context, user *models.User) (string, error) {
	user.CreatedAt = time.Now()
	return createWithID(s.db, ctx, user, user.ID,
		func(u *models.User, id string) { u.ID = id },
		models.ErrDuplicateUser)
}

func (s *GORMStore) DeleteUser(ctx context.Context, username string) error {
	return deleteScoped[models.User](
		s.db.WithContext(ctx).Where("username = ?", username),
		models.ErrUserNotFound,
	)
}

func (s *GORMStore) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

func (s *GORMStore) UpdateLastLogin(ctx context.Context, username string) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("last_login", time.Now())

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
