package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func seedIntent(repo *fakeIntentRepo, latePostID, status string) int64 {
	repo.nextID++
	repo.intents[repo.nextID] = &models.PostIntent{
		ID:         repo.nextID,
		UserID:     7,
		Status:     status,
		LatePostID: sql.NullString{String: latePostID, Valid: latePostID != ""},
	}
	return repo.nextID
}

func TestReconcileStatusAppliesKnownEvents(t *testing.T) {
	cases := []struct {
		event string
		want  string
	}{
		{"post.published", models.IntentStatusPublished},
		{"post.failed", models.IntentStatusFailed},
		{"post.deleted", models.IntentStatusCancelled},
		{"post.cancelled", models.IntentStatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.event, func(t *testing.T) {
			repo := newFakeIntentRepo()
			id := seedIntent(repo, "lp_1", models.IntentStatusScheduled)

			svc := NewWebhookService(repo)
			svc.ReconcileStatus(context.Background(), &transfer.LateWebhookEvent{Name: tc.event, LatePostID: "lp_1"})

			assert.Equal(t, tc.want, repo.intents[id].Status)
		})
	}
}

func TestReconcileStatusIgnoresUnknownEvent(t *testing.T) {
	repo := newFakeIntentRepo()
	id := seedIntent(repo, "lp_1", models.IntentStatusScheduled)

	svc := NewWebhookService(repo)
	svc.ReconcileStatus(context.Background(), &transfer.LateWebhookEvent{Name: "post.liked", LatePostID: "lp_1"})

	assert.Equal(t, models.IntentStatusScheduled, repo.intents[id].Status)
}

func TestReconcileStatusIgnoresUnknownPost(t *testing.T) {
	repo := newFakeIntentRepo()
	seedIntent(repo, "lp_1", models.IntentStatusScheduled)

	svc := NewWebhookService(repo)
	svc.ReconcileStatus(context.Background(), &transfer.LateWebhookEvent{Name: "post.published", LatePostID: "lp_other"})
}

func TestReconcileStatusNeverResurrectsCancelledIntent(t *testing.T) {
	repo := newFakeIntentRepo()
	id := seedIntent(repo, "lp_1", models.IntentStatusCancelled)

	svc := NewWebhookService(repo)
	svc.ReconcileStatus(context.Background(), &transfer.LateWebhookEvent{Name: "post.published", LatePostID: "lp_1"})

	assert.Equal(t, models.IntentStatusCancelled, repo.intents[id].Status)
}

func TestReconcileStatusIsIdempotent(t *testing.T) {
	repo := newFakeIntentRepo()
	id := seedIntent(repo, "lp_1", models.IntentStatusScheduled)

	svc := NewWebhookService(repo)
	event := &transfer.LateWebhookEvent{Name: "post.failed", LatePostID: "lp_1"}
	svc.ReconcileStatus(context.Background(), event)
	svc.ReconcileStatus(context.Background(), event)

	assert.Equal(t, models.IntentStatusFailed, repo.intents[id].Status)
}
