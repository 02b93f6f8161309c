package handlers

import (
	"github.com/adforgehq/adforge-api/internal/refdocs"
	"github.com/gofiber/fiber/v2"
)

type RefdocsHandler struct {
	store *refdocs.Store
}

func NewRefdocsHandler(store *refdocs.Store) *RefdocsHandler {
	return &RefdocsHandler{store: store}
}

// ReloadSpecs swaps in a fresh snapshot of the platform spec documents. This
// is the only way the documents change after process start.
func (h *RefdocsHandler) ReloadSpecs(c *fiber.Ctx) error {
	if err := h.store.Reload(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"platforms": h.store.Specs().Platforms(),
	})
}
