package handlers

import (
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	s service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{s: service}
}

// HandleLateWebhook always acknowledges with 200. Giving the sender a failure
// status would make it retry indefinitely or disable the subscription, so
// unparseable and unrecognized payloads are received and dropped.
func (h *WebhookHandler) HandleLateWebhook(c *fiber.Ctx) error {
	event, ok := transfer.ParseLateWebhook(c.Body())
	if ok {
		h.s.ReconcileStatus(c.Context(), event)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"received": true,
	})
}
