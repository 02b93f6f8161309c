package models

import "time"

type ContentItem struct {
	ID         string    `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Kind       string    `db:"kind" json:"kind"` // ad, video
	StorageKey string    `db:"storage_key" json:"storage_key"`
	FileType   string    `db:"file_type" json:"file_type"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

const (
	ContentKindAd    = "ad"
	ContentKindVideo = "video"
)
