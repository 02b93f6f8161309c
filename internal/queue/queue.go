package queue

import (
	"time"
)

const TaskTypeRegisterPost = "late:register"

// RegistrationRetryDelay spaces re-attempts far enough apart that a Late
// outage does not burn through the retry budget in seconds.
const RegistrationRetryDelay = 5 * time.Minute

type RegisterPostPayload struct {
	IntentID int64 `json:"intent_id"`
}
