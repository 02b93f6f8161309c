package models

import "time"

type BrandProfile struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	BrandName  string    `db:"brand_name" json:"brand_name"`
	Tone       string    `db:"tone" json:"tone"`
	Website    string    `db:"website" json:"website"`
	LateAPIKey string    `db:"late_api_key" json:"-"` // AES-GCM encrypted at rest
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
