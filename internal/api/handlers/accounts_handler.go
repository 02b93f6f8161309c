package handlers

import (
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/gofiber/fiber/v2"
)

// AccountsHandler exposes the accounts connected at the publishing service.
// Accounts live there; nothing about them is cached locally beyond the ids
// users pick as scheduling targets.
type AccountsHandler struct {
	s service.LateService
}

func NewAccountsHandler(service service.LateService) *AccountsHandler {
	return &AccountsHandler{s: service}
}

func (h *AccountsHandler) ListConnectedAccounts(c *fiber.Ctx) error {
	if !h.s.Configured() {
		return c.Status(fiber.StatusOK).JSON([]any{})
	}

	accounts, err := h.s.ListAccounts(c.Context(), "")
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to list connected accounts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}
