package handlers

import (
	"errors"
	"strconv"

	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/gofiber/fiber/v2"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
