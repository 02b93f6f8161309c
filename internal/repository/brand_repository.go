package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/adforgehq/adforge-api/internal/models"
)

type BrandProfileRepository interface {
	Create(ctx context.Context, profile *models.BrandProfile) (int64, error)
	GetByUserID(ctx context.Context, userID int64) (*models.BrandProfile, bool, error)
	UpdateProfile(ctx context.Context, profile *models.BrandProfile, userID int64) error
}

type brandProfileRepository struct {
	db *sql.DB
}

func NewBrandProfileRepository(db *sql.DB) BrandProfileRepository {
	return &brandProfileRepository{db: db}
}

func (r *brandProfileRepository) Create(ctx context.Context, profile *models.BrandProfile) (int64, error) {
	query := `
		INSERT INTO brand_profiles (user_id, brand_name, tone, website, late_api_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, profile.UserID, profile.BrandName, profile.Tone, profile.Website, profile.LateAPIKey).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *brandProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.BrandProfile, bool, error) {
	query := `SELECT id, user_id, brand_name, tone, website, late_api_key, created_at, updated_at FROM brand_profiles WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var profile models.BrandProfile
	err := row.Scan(&profile.ID, &profile.UserID, &profile.BrandName, &profile.Tone, &profile.Website, &profile.LateAPIKey, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &profile, true, nil
}

func (r *brandProfileRepository) UpdateProfile(ctx context.Context, profile *models.BrandProfile, userID int64) error {
	query := `
		UPDATE brand_profiles
		SET brand_name = $1,
			tone = $2,
			website = $3,
			late_api_key = $4,
			updated_at = $5
		WHERE user_id = $6
	`
	_, err := r.db.ExecContext(ctx, query, profile.BrandName, profile.Tone, profile.Website, profile.LateAPIKey, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
