package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/pkg/utils"
)

// Keys are capped per user; programmatic schedulers rarely need more than a
// couple, and a cap keeps a leaked account from minting keys without bound.
const maxKeysPerUser = 5

const apiKeyBytes = 16

type ApiKeyService interface {
	Create(ctx context.Context, userID int64) error
	List(ctx context.Context, userID int64) ([]*models.ApiKey, error)
	GetUserID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, userID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{k: k}
}

func (s *apiKeyService) Create(ctx context.Context, userID int64) error {
	if userID == 0 {
		return ErrUnauthorized
	}

	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("error listing api keys: %w", ErrPersistence)
	}
	if len(keys) >= maxKeysPerUser {
		return fmt.Errorf("at most %d api keys per user: %w", maxKeysPerUser, ErrValidation)
	}

	key, err := utils.GenerateRandomKey(apiKeyBytes)
	if err != nil {
		slog.Info(err.Error())
		return errors.New("error generating api key")
	}

	if _, err := s.k.Create(ctx, &models.ApiKey{UserID: userID, ApiKey: key}); err != nil {
		return fmt.Errorf("error saving api key: %w", ErrPersistence)
	}
	return nil
}

// GetUserID resolves an api key to its owner. Unknown keys come back as
// ErrUnauthorized; the gate turns that into a 401.
func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, error) {
	userID, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, fmt.Errorf("error resolving api key: %w", ErrPersistence)
	}
	if !isExist {
		return 0, ErrUnauthorized
	}
	return userID, nil
}

func (s *apiKeyService) List(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	keys, err := s.k.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing api keys: %w", ErrPersistence)
	}
	return keys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, userID, keyID int64) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	if keyID == 0 {
		return fmt.Errorf("key id is required: %w", ErrValidation)
	}

	isValid, err := s.k.CheckByUserID(ctx, keyID, userID)
	if err != nil {
		return fmt.Errorf("error checking api key: %w", ErrPersistence)
	}
	if !isValid {
		return ErrNotFoundOrForbidden
	}

	if err := s.k.Remove(ctx, keyID); err != nil {
		return fmt.Errorf("error removing api key: %w", ErrPersistence)
	}
	return nil
}
