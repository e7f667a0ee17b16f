package handler

import (
	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/service"
)

// CatalogHandler serves categories and suppliers.
type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// GET /api/v1/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GET /api/v1/categories/:id
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.UserContext(), middleware.Actor(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

// PUT /api/v1/categories/:id
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req service.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.UpdateCategory(c.UserContext(), middleware.Actor(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DELETE /api/v1/categories/:id
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteCategory(c.UserContext(), middleware.Actor(c), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// GET /api/v1/suppliers
func (h *CatalogHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(suppliers)
}

// GET /api/v1/suppliers/:id
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	supplier, err := h.service.GetSupplier(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(supplier)
}

// POST /api/v1/suppliers
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	supplier, err := h.service.CreateSupplier(c.UserContext(), middleware.Actor(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Supplier created successfully",
		"data":    supplier,
	})
}

// PUT /api/v1/suppliers/:id
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req service.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	supplier, err := h.service.UpdateSupplier(c.UserContext(), middleware.Actor(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Supplier updated successfully",
		"data":    supplier,
	})
}

// DELETE /api/v1/suppliers/:id
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSupplier(c.UserContext(), middleware.Actor(c), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Supplier deleted successfully"})
}
