package queue

import (
	"context"
	"encoding/json"

	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/hibiken/asynq"
)

type Worker struct {
	s service.ScheduleService
}

func NewWorker(s service.ScheduleService) *Worker {
	return &Worker{s: s}
}

// HandleRegisterPostTask re-runs the external registration leg for an intent.
// A returned error makes asynq retry with backoff; intents that have since
// been cancelled or registered resolve to a silent no-op inside the service.
func (w *Worker) HandleRegisterPostTask(ctx context.Context, task *asynq.Task) error {
	var payload RegisterPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return w.s.RetryRegistration(ctx, payload.IntentID)
}
