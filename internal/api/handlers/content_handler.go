package handlers

import (
	"log/slog"

	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{s: service}
}

func (h *ContentHandler) UploadCreative(c *fiber.Ctx) error {
	userID := GetUserID(c)

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	kind := c.FormValue("kind")
	files := form.File["file"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	item, err := h.s.Upload(c.Context(), userID, kind, files[0])
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ContentHandler) ListCreatives(c *fiber.Ctx) error {
	userID := GetUserID(c)

	items, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": "Unable to list creatives",
		})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ContentHandler) RemoveCreative(c *fiber.Ctx) error {
	userID := GetUserID(c)
	itemID := c.Query("id")

	if err := h.s.Remove(c.Context(), userID, itemID); err != nil {
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
