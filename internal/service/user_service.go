package service

import (
	"context"
	"fmt"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
)

type UserService interface {
	GetUserInfo(ctx context.Context, id int64) (*models.User, error)
	RemoveUser(ctx context.Context, userID int64) error
}

type userService struct {
	u repository.UserRepository
}

func NewUserService(u repository.UserRepository) UserService {
	return &userService{u: u}
}

func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.User, error) {
	if id == 0 {
		return nil, ErrUnauthorized
	}

	user, isExist, err := s.u.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", ErrPersistence)
	}
	if !isExist {
		return nil, ErrNotFoundOrForbidden
	}

	return user, nil
}

func (s *userService) RemoveUser(ctx context.Context, userID int64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if err := s.u.Remove(ctx, userID); err != nil {
		return fmt.Errorf("error removing user: %w", ErrPersistence)
	}
	return nil
}
