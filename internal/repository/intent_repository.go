package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/adforgehq/adforge-api/internal/models"
)

type IntentRepository interface {
	Create(ctx context.Context, intent *models.PostIntent, items []models.IntentItem, targets []models.IntentTarget) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.PostIntent, error)
	GetByLatePostID(ctx context.Context, latePostID string) (*models.PostIntent, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.PostIntent, error)
	GetStaleRegistered(ctx context.Context, olderThan time.Time) ([]*models.PostIntent, error)
	ListItems(ctx context.Context, intentID int64) ([]*models.IntentItem, error)
	ListTargets(ctx context.Context, intentID int64) ([]*models.IntentTarget, error)
	CheckByUserID(ctx context.Context, intentID, userID int64) (bool, error)
	SetLatePostID(ctx context.Context, intentID int64, latePostID string) error
	UpdateStatusFromScheduled(ctx context.Context, status string, intentID int64) (bool, error)
	Cancel(ctx context.Context, intentID int64) error
}

type intentRepository struct {
	db *sql.DB
}

func NewIntentRepository(db *sql.DB) IntentRepository {
	return &intentRepository{db: db}
}

// Create inserts the intent row together with its item and target rows in one
// transaction, so a failed insert never leaves a partially persisted intent.
func (r *intentRepository) Create(ctx context.Context, intent *models.PostIntent, items []models.IntentItem, targets []models.IntentTarget) (int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	query := `
		INSERT INTO post_intents (user_id, post_type, caption, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err = tx.QueryRowContext(ctx, query, intent.UserID, intent.PostType, intent.Caption, intent.ScheduledTime, intent.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	itemQuery := `
		INSERT INTO intent_items (intent_id, content_item_id, kind, display_order)
		VALUES ($1, $2, $3, $4)
	`
	for _, item := range items {
		if _, err = tx.ExecContext(ctx, itemQuery, id, item.ContentItemID, item.Kind, item.DisplayOrder); err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	}

	targetQuery := `
		INSERT INTO intent_targets (intent_id, platform, late_account_id, display_order)
		VALUES ($1, $2, $3, $4)
	`
	for _, target := range targets {
		if _, err = tx.ExecContext(ctx, targetQuery, id, target.Platform, target.LateAccountID, target.DisplayOrder); err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *intentRepository) GetByID(ctx context.Context, id int64) (*models.PostIntent, error) {
	query := `SELECT id, user_id, post_type, caption, scheduled_time, status, late_post_id, created_at, updated_at FROM post_intents WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var intent models.PostIntent
	err := row.Scan(&intent.ID, &intent.UserID, &intent.PostType, &intent.Caption, &intent.ScheduledTime, &intent.Status, &intent.LatePostID, &intent.CreatedAt, &intent.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &intent, nil
}

func (r *intentRepository) GetByLatePostID(ctx context.Context, latePostID string) (*models.PostIntent, error) {
	query := `SELECT id, user_id, post_type, caption, scheduled_time, status, late_post_id, created_at, updated_at FROM post_intents WHERE late_post_id = $1`
	row := r.db.QueryRowContext(ctx, query, latePostID)

	var intent models.PostIntent
	err := row.Scan(&intent.ID, &intent.UserID, &intent.PostType, &intent.Caption, &intent.ScheduledTime, &intent.Status, &intent.LatePostID, &intent.CreatedAt, &intent.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &intent, nil
}

func (r *intentRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.PostIntent, error) {
	query := `SELECT id, user_id, post_type, caption, scheduled_time, status, late_post_id, created_at, updated_at FROM post_intents WHERE user_id = $1 ORDER BY scheduled_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var intents []*models.PostIntent
	for rows.Next() {
		var intent models.PostIntent
		err := rows.Scan(&intent.ID, &intent.UserID, &intent.PostType, &intent.Caption, &intent.ScheduledTime, &intent.Status, &intent.LatePostID, &intent.CreatedAt, &intent.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		intents = append(intents, &intent)
	}
	return intents, nil
}

// GetStaleRegistered lists intents that were registered externally, are past
// their scheduled time by some margin, and never received a status webhook.
func (r *intentRepository) GetStaleRegistered(ctx context.Context, olderThan time.Time) ([]*models.PostIntent, error) {
	query := `
		SELECT id, user_id, post_type, caption, scheduled_time, status, late_post_id, created_at, updated_at
		FROM post_intents
		WHERE status = $1 AND late_post_id IS NOT NULL AND scheduled_time < $2
	`

	rows, err := r.db.QueryContext(ctx, query, models.IntentStatusScheduled, olderThan)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var intents []*models.PostIntent
	for rows.Next() {
		var intent models.PostIntent
		err := rows.Scan(&intent.ID, &intent.UserID, &intent.PostType, &intent.Caption, &intent.ScheduledTime, &intent.Status, &intent.LatePostID, &intent.CreatedAt, &intent.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		intents = append(intents, &intent)
	}
	return intents, nil
}

func (r *intentRepository) ListItems(ctx context.Context, intentID int64) ([]*models.IntentItem, error) {
	query := `SELECT intent_id, content_item_id, kind, display_order, created_at FROM intent_items WHERE intent_id = $1 ORDER BY display_order`

	rows, err := r.db.QueryContext(ctx, query, intentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.IntentItem
	for rows.Next() {
		var item models.IntentItem
		err := rows.Scan(&item.IntentID, &item.ContentItemID, &item.Kind, &item.DisplayOrder, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *intentRepository) ListTargets(ctx context.Context, intentID int64) ([]*models.IntentTarget, error) {
	query := `SELECT intent_id, platform, late_account_id, display_order, created_at FROM intent_targets WHERE intent_id = $1 ORDER BY display_order`

	rows, err := r.db.QueryContext(ctx, query, intentID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var targets []*models.IntentTarget
	for rows.Next() {
		var target models.IntentTarget
		err := rows.Scan(&target.IntentID, &target.Platform, &target.LateAccountID, &target.DisplayOrder, &target.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		targets = append(targets, &target)
	}
	return targets, nil
}

func (r *intentRepository) CheckByUserID(ctx context.Context, intentID, userID int64) (bool, error) {
	query := "SELECT 1 FROM post_intents WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, intentID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// SetLatePostID records the external reference. The IS NULL guard keeps the
// reference write-once even if a retry races the original request.
func (r *intentRepository) SetLatePostID(ctx context.Context, intentID int64, latePostID string) error {
	query := `
		UPDATE post_intents
		SET late_post_id = $1,
			updated_at = $2
		WHERE id = $3 AND late_post_id IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, latePostID, time.Now(), intentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// UpdateStatusFromScheduled only moves intents still in the scheduled state,
// so a late webhook never resurrects a cancelled or already-settled intent.
func (r *intentRepository) UpdateStatusFromScheduled(ctx context.Context, status string, intentID int64) (bool, error) {
	query := `
		UPDATE post_intents
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, time.Now(), intentID, models.IntentStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

// Cancel moves a scheduled intent to cancelled. Published, failed and
// already-cancelled intents are terminal and stay untouched.
func (r *intentRepository) Cancel(ctx context.Context, intentID int64) error {
	query := `
		UPDATE post_intents
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.IntentStatusCancelled, time.Now(), intentID, models.IntentStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
