package models

import "time"

// RegistrationAttempt records one try at registering an intent with the
// external publishing service, successful or not.
type RegistrationAttempt struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	IntentID     int64     `db:"intent_id" json:"intent_id"`
	Outcome      string    `db:"outcome" json:"outcome"` // success, error, skipped
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
