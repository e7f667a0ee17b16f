package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/service"
)

type IssuanceHandler struct {
	service service.IssuanceService
}

func NewIssuanceHandler(s service.IssuanceService) *IssuanceHandler {
	return &IssuanceHandler{service: s}
}

// GET /api/v1/issuances
func (h *IssuanceHandler) GetIssuances(c *fiber.Ctx) error {
	issuances, err := h.service.ListIssuances(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(issuances)
}

// GET /api/v1/issuances/:id
func (h *IssuanceHandler) GetIssuance(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	issuance, err := h.service.GetIssuance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(issuance)
}

// GetIssuancesByDateRange lists issuances whose issue date falls within the
// inclusive range.
// GET /api/v1/issuances/date-range?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
func (h *IssuanceHandler) GetIssuancesByDateRange(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		return err
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		return err
	}

	issuances, err := h.service.ListIssuancesByDateRange(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(issuances)
}

// POST /api/v1/issuances
func (h *IssuanceHandler) CreateIssuance(c *fiber.Ctx) error {
	var req service.CreateIssuanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	issuance, err := h.service.CreateIssuance(c.UserContext(), middleware.Actor(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Issuance recorded successfully",
		"data":    issuance,
	})
}

// DeleteIssuance removes the record and returns its quantity to stock.
// DELETE /api/v1/issuances/:id
func (h *IssuanceHandler) DeleteIssuance(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteIssuance(c.UserContext(), middleware.Actor(c), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Issuance deleted successfully"})
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, apperr.ErrInvalidDateRange.WrapParent(err)
	}
	return d, nil
}
