package handlers

import (
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/gofiber/fiber/v2"
)

type BrandHandler struct {
	s service.BrandService
}

func NewBrandHandler(service service.BrandService) *BrandHandler {
	return &BrandHandler{s: service}
}

func (h *BrandHandler) GetBrandInfo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	profile, err := h.s.GetProfile(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to find brand profile for given user",
		})
	}

	return c.JSON(profile)
}

func (h *BrandHandler) UpdateBrand(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var update transfer.BrandProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdateProfile(c.Context(), userID, &update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update brand profile",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
