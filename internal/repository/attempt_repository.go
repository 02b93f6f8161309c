package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/models"
)

type RegistrationAttemptRepository interface {
	Create(ctx context.Context, ra *models.RegistrationAttempt) (int64, error)
	GetByIntentID(ctx context.Context, intentID int64) ([]*models.RegistrationAttempt, error)
}

type registrationAttemptRepository struct {
	db *sql.DB
}

func NewRegistrationAttemptRepository(db *sql.DB) RegistrationAttemptRepository {
	return &registrationAttemptRepository{db: db}
}

func (r *registrationAttemptRepository) Create(ctx context.Context, ra *models.RegistrationAttempt) (int64, error) {
	query := `
		INSERT INTO registration_attempts (user_id, intent_id, outcome, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, ra.UserID, ra.IntentID, ra.Outcome, ra.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *registrationAttemptRepository) GetByIntentID(ctx context.Context, intentID int64) ([]*models.RegistrationAttempt, error) {
	query := `SELECT id, user_id, intent_id, outcome, error_message, created_at FROM registration_attempts WHERE intent_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, intentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var attempts []*models.RegistrationAttempt
	for rows.Next() {
		var ra models.RegistrationAttempt
		err := rows.Scan(&ra.ID, &ra.UserID, &ra.IntentID, &ra.Outcome, &ra.ErrorMessage, &ra.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		attempts = append(attempts, &ra)
	}
	return attempts, nil
}
