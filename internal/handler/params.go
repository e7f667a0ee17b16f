package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"inventory-tracker/internal/apperr"
)

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.ErrInvalidID.WrapParent(err)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.ErrInvalidBody.WrapParent(err)
	}
	return nil
}
