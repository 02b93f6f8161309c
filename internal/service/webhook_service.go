package service

import (
	"context"
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/internal/transfer"
)

// Status changes the publishing service reports, keyed by its event names.
// Everything else is acknowledged without state change.
var lateEventStatus = map[string]string{
	"post.published": models.IntentStatusPublished,
	"post.failed":    models.IntentStatusFailed,
	"post.deleted":   models.IntentStatusCancelled,
	"post.cancelled": models.IntentStatusCancelled,
}

type WebhookService interface {
	ReconcileStatus(ctx context.Context, event *transfer.LateWebhookEvent)
}

type webhookService struct {
	ir repository.IntentRepository
}

func NewWebhookService(ir repository.IntentRepository) WebhookService {
	return &webhookService{ir: ir}
}

// ReconcileStatus applies an external status notification. The notification
// channel has no ordering or replay guarantee, so every path here is an
// idempotent no-op when there is nothing to do, and nothing ever errors back
// to the caller; a non-2xx response would make the sender retry forever.
func (s *webhookService) ReconcileStatus(ctx context.Context, event *transfer.LateWebhookEvent) {
	if event == nil {
		return
	}

	status, ok := lateEventStatus[event.Name]
	if !ok {
		slog.Info("ignoring unrecognized webhook event", "event", event.Name)
		return
	}

	intent, err := s.ir.GetByLatePostID(ctx, event.LatePostID)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if intent == nil {
		slog.Info("webhook references unknown post", "late_post_id", event.LatePostID)
		return
	}

	// Only scheduled intents move; cancelled and settled intents stay put.
	applied, err := s.ir.UpdateStatusFromScheduled(ctx, status, intent.ID)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if !applied {
		slog.Info("webhook ignored for settled intent", "intent_id", intent.ID, "event", event.Name)
	}
}
