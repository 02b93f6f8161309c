package transfer

import "github.com/adforgehq/adforge-api/internal/models"

type ItemRef struct {
	ID   string `json:"id"`
	Type string `json:"type"` // ad, video
}

type PlatformTarget struct {
	Platform  string `json:"platform"`
	AccountID string `json:"account_id"`
}

type ScheduleRequest struct {
	PostType     string           `json:"post_type"`
	Items        []ItemRef        `json:"items"`
	Caption      string           `json:"caption"`
	ScheduledFor string           `json:"scheduled_for"`
	Platforms    []PlatformTarget `json:"platforms"`
}

// Registration outcomes for the external leg of a scheduling request. The
// local write succeeds independently of these.
const (
	LateStatusSuccess = "success"
	LateStatusError   = "error"
	LateStatusSkipped = "skipped"
)

const (
	SkipReasonNoCredential = "no_credential"
	SkipReasonNoPlatforms  = "no_platforms"
)

// Retraction outcomes for cancellation. Local cancellation is authoritative;
// these are advisory.
const (
	LateDeleteSuccess = "success"
	LateDeleteError   = "error"
	LateDeleteNoID    = "no_id"
	LateDeleteSkipped = "skipped"
)

type ScheduleResult struct {
	Post       *models.PostIntent `json:"post"`
	LateStatus string             `json:"late_status"`
	SkipReason string             `json:"skip_reason,omitempty"`
	LateError  string             `json:"late_error,omitempty"`
}

type CancelRequest struct {
	ID int64 `json:"id"`
}

type CancelResult struct {
	Success    bool   `json:"success"`
	LateDelete string `json:"late_delete"`
	LateError  string `json:"late_error,omitempty"`
}

type IntentDetail struct {
	Post     *models.PostIntent            `json:"post"`
	Items    []*models.IntentItem          `json:"items"`
	Targets  []*models.IntentTarget        `json:"targets"`
	Attempts []*models.RegistrationAttempt `json:"attempts"`
}

type BrandProfileUpdate struct {
	BrandName  string `json:"brand_name"`
	Tone       string `json:"tone"`
	Website    string `json:"website"`
	LateAPIKey string `json:"late_api_key"`
}
