package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/adforgehq/adforge-api/pkg/utils"
)

type BrandService interface {
	GetProfile(ctx context.Context, userID int64) (*models.BrandProfile, error)
	UpdateProfile(ctx context.Context, userID int64, update *transfer.BrandProfileUpdate) error
}

type brandService struct {
	cfg config.Config
	bp  repository.BrandProfileRepository
}

func NewBrandService(cfg config.Config, bp repository.BrandProfileRepository) BrandService {
	return &brandService{
		cfg: cfg,
		bp:  bp,
	}
}

func (s *brandService) GetProfile(ctx context.Context, userID int64) (*models.BrandProfile, error) {
	profile, isExist, err := s.bp.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		err = errors.New("brand profile for given user doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return profile, nil
}

// UpdateProfile upserts the profile. A supplied Late API key is encrypted
// before it is stored; an empty key clears the per-user override.
func (s *brandService) UpdateProfile(ctx context.Context, userID int64, update *transfer.BrandProfileUpdate) error {
	if update == nil {
		return errors.New("brand profile update is nil")
	}

	encryptedKey := ""
	if update.LateAPIKey != "" {
		var err error
		encryptedKey, err = utils.Encrypt([]byte(update.LateAPIKey), []byte(s.cfg.SecretKey))
		if err != nil {
			slog.Info(err.Error())
			return err
		}
	}

	profile := models.BrandProfile{
		UserID:     userID,
		BrandName:  update.BrandName,
		Tone:       update.Tone,
		Website:    update.Website,
		LateAPIKey: encryptedKey,
	}

	_, isExist, err := s.bp.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if !isExist {
		_, err = s.bp.Create(ctx, &profile)
		return err
	}
	return s.bp.UpdateProfile(ctx, &profile, userID)
}
