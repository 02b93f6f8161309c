package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/lib/pq"
)

type ContentItemRepository interface {
	Create(ctx context.Context, item *models.ContentItem) error
	GetByID(ctx context.Context, id string) (*models.ContentItem, bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error)
	GetOwnedByIDs(ctx context.Context, userID int64, ids []string) ([]*models.ContentItem, error)
	Remove(ctx context.Context, id string) error
}

type contentItemRepository struct {
	db *sql.DB
}

func NewContentItemRepository(db *sql.DB) ContentItemRepository {
	return &contentItemRepository{db: db}
}

func (r *contentItemRepository) Create(ctx context.Context, item *models.ContentItem) error {
	query := `
		INSERT INTO content_items (id, user_id, kind, storage_key, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.UserID, item.Kind, item.StorageKey, item.FileType, item.FileSize)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentItemRepository) GetByID(ctx context.Context, id string) (*models.ContentItem, bool, error) {
	query := `SELECT id, user_id, kind, storage_key, file_type, file_size, created_at FROM content_items WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var item models.ContentItem
	err := row.Scan(&item.ID, &item.UserID, &item.Kind, &item.StorageKey, &item.FileType, &item.FileSize, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &item, true, nil
}

func (r *contentItemRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ContentItem, error) {
	query := `SELECT id, user_id, kind, storage_key, file_type, file_size, created_at FROM content_items WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Kind, &item.StorageKey, &item.FileType, &item.FileSize, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

// GetOwnedByIDs returns only the rows where both id and owner match. Callers
// compare the result count against the requested count; a shorter result means
// at least one id is missing or belongs to someone else.
func (r *contentItemRepository) GetOwnedByIDs(ctx context.Context, userID int64, ids []string) ([]*models.ContentItem, error) {
	query := `SELECT id, user_id, kind, storage_key, file_type, file_size, created_at FROM content_items WHERE user_id = $1 AND id = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(ids))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var items []*models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		err := rows.Scan(&item.ID, &item.UserID, &item.Kind, &item.StorageKey, &item.FileType, &item.FileSize, &item.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *contentItemRepository) Remove(ctx context.Context, id string) error {
	query := `DELETE FROM content_items WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
