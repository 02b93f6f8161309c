package transfer

import "encoding/json"

type LateAccount struct {
	ID       string `json:"_id"`
	Platform string `json:"platform"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

type LateAccountsResponse struct {
	Accounts []LateAccount `json:"accounts"`
}

type LateMediaItem struct {
	Type string `json:"type"` // image, video
	URL  string `json:"url"`
}

type LatePlatformTarget struct {
	Platform  string `json:"platform"`
	AccountID string `json:"accountId"`
}

type LateCreatePostRequest struct {
	Content      string               `json:"content"`
	ScheduledFor string               `json:"scheduledFor"`
	Timezone     string               `json:"timezone"`
	Platforms    []LatePlatformTarget `json:"platforms"`
	MediaItems   []LateMediaItem      `json:"mediaItems"`
}

type LatePost struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}

type LateCreatePostResponse struct {
	Post  LatePost `json:"post"`
	Error string   `json:"error"`
}

type LateGetPostResponse struct {
	Post  LatePost `json:"post"`
	Error string   `json:"error"`
}

type LateErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// LateWebhookEvent is the normalized form of the two envelope shapes Late
// sends: {event, data:{_id|id, status}} and {type, post:{id}}.
type LateWebhookEvent struct {
	Name       string
	LatePostID string
}

type lateWebhookEnvelope struct {
	Event string `json:"event"`
	Data  *struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
		Status  string `json:"status"`
	} `json:"data"`
	Type string `json:"type"`
	Post *struct {
		ID string `json:"id"`
	} `json:"post"`
}

// ParseLateWebhook resolves the envelope shape by field presence, preferring
// the event/data form. Returns false when neither shape matches or the post
// reference is missing; callers acknowledge those without acting.
func ParseLateWebhook(body []byte) (*LateWebhookEvent, bool) {
	var envelope lateWebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false
	}

	if envelope.Event != "" && envelope.Data != nil {
		id := envelope.Data.MongoID
		if id == "" {
			id = envelope.Data.ID
		}
		if id == "" {
			return nil, false
		}
		return &LateWebhookEvent{Name: envelope.Event, LatePostID: id}, true
	}

	if envelope.Type != "" && envelope.Post != nil {
		if envelope.Post.ID == "" {
			return nil, false
		}
		return &LateWebhookEvent{Name: envelope.Type, LatePostID: envelope.Post.ID}, true
	}

	return nil, false
}
