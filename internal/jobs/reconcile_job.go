package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/pkg/utils"
)

// Late status values that map onto local intent statuses during the sweep.
var lateStatusLocal = map[string]string{
	"published": models.IntentStatusPublished,
	"failed":    models.IntentStatusFailed,
	"deleted":   models.IntentStatusCancelled,
}

// ReconcileJob is the safety net for lost webhooks: it polls Late for intents
// that were registered, are past their scheduled time, and never heard back.
type ReconcileJob struct {
	cfg  config.Config
	ir   repository.IntentRepository
	bp   repository.BrandProfileRepository
	late service.LateService
}

func NewReconcileJob(
	cfg config.Config,
	ir repository.IntentRepository,
	bp repository.BrandProfileRepository,
	late service.LateService) *ReconcileJob {
	return &ReconcileJob{
		cfg:  cfg,
		ir:   ir,
		bp:   bp,
		late: late,
	}
}

func (j *ReconcileJob) ReconcileStatuses() {
	ctx := context.Background()

	// Give the webhook an hour head start before polling.
	cutoff := time.Now().Add(-1 * time.Hour)

	intents, err := j.ir.GetStaleRegistered(ctx, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, intent := range intents {
		apiKey := j.userLateKey(ctx, intent.UserID)
		if apiKey == "" && !j.late.Configured() {
			continue
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(intent *models.PostIntent, apiKey string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			post, err := j.late.GetPost(ctx, apiKey, intent.LatePostID.String)
			if err != nil {
				slog.Info("Unable to poll post status", "intent_id", intent.ID, "err", err.Error())
				return
			}

			status, ok := lateStatusLocal[post.Status]
			if !ok {
				return
			}

			if _, err := j.ir.UpdateStatusFromScheduled(ctx, status, intent.ID); err != nil {
				slog.Info(err.Error())
			}
		}(intent, apiKey)
	}

	wg.Wait()
}

func (j *ReconcileJob) userLateKey(ctx context.Context, userID int64) string {
	profile, isExist, err := j.bp.GetByUserID(ctx, userID)
	if err != nil || !isExist || profile.LateAPIKey == "" {
		return ""
	}

	key, err := utils.Decrypt(profile.LateAPIKey, []byte(j.cfg.SecretKey))
	if err != nil {
		slog.Info(err.Error())
		return ""
	}
	return key
}
