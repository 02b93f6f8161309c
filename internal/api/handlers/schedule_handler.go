package handlers

import (
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/queue"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type ScheduleHandler struct {
	s           service.ScheduleService
	retryFailed bool
	AsynqClient *asynq.Client
}

func NewScheduleHandler(service service.ScheduleService, retryFailed bool, asynqClient *asynq.Client) *ScheduleHandler {
	return &ScheduleHandler{s: service, retryFailed: retryFailed, AsynqClient: asynqClient}
}

func (h *ScheduleHandler) CreateIntent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Schedule(c.Context(), userID, &req)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if result.LateStatus == transfer.LateStatusError && h.retryFailed {
		if err := queue.EnqueueRegistration(h.AsynqClient, queue.RegisterPostPayload{IntentID: result.Post.ID}, queue.RegistrationRetryDelay); err != nil {
			slog.Error(err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ScheduleHandler) ListIntents(c *fiber.Ctx) error {
	userID := GetUserID(c)
	intentID := c.QueryInt("id", 0)

	if intentID != 0 {
		detail, err := h.s.IntentInfo(c.Context(), int64(intentID), userID)
		if err != nil {
			return c.Status(statusFromError(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusOK).JSON(detail)
	}

	intents, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": "Unable to list scheduled posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(intents)
}

func (h *ScheduleHandler) CancelIntent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	result, err := h.s.Cancel(c.Context(), userID, req.ID)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
