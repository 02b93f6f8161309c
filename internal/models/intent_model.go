package models

import (
	"database/sql"
	"time"
)

type PostIntent struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	PostType      string         `db:"post_type" json:"post_type"` // single, carousel
	Caption       string         `db:"caption" json:"caption"`
	ScheduledTime time.Time      `db:"scheduled_time" json:"scheduled_time"`
	Status        string         `db:"status" json:"status"`
	LatePostID    sql.NullString `db:"late_post_id" json:"late_post_id"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// IntentItem references a ContentItem from an intent. Items keep their
// submitted order so carousels publish in the order the user arranged.
type IntentItem struct {
	IntentID      int64     `db:"intent_id" json:"intent_id"`
	ContentItemID string    `db:"content_item_id" json:"content_item_id"`
	Kind          string    `db:"kind" json:"kind"`
	DisplayOrder  int       `db:"display_order" json:"display_order"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type IntentTarget struct {
	IntentID      int64     `db:"intent_id" json:"intent_id"`
	Platform      string    `db:"platform" json:"platform"`
	LateAccountID string    `db:"late_account_id" json:"late_account_id"`
	DisplayOrder  int       `db:"display_order" json:"display_order"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

const (
	IntentStatusScheduled = "scheduled"
	IntentStatusPublished = "published"
	IntentStatusFailed    = "failed"
	IntentStatusCancelled = "cancelled"
)

const (
	PostTypeSingle   = "single"
	PostTypeCarousel = "carousel"
)

const (
	CarouselMinItems = 2
	CarouselMaxItems = 10
)
