package handler

import (
	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/service"
)

type ProductHandler struct {
	products  service.ProductService
	stock     service.StockService
	issuances service.IssuanceService
}

func NewProductHandler(products service.ProductService, stock service.StockService, issuances service.IssuanceService) *ProductHandler {
	return &ProductHandler{products: products, stock: stock, issuances: issuances}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.products.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/v1/products/low-stock
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.products.ListLowStock(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/v1/products/search?term=
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.products.SearchProducts(c.UserContext(), c.Query("term"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	product, err := h.products.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.products.CreateProduct(c.UserContext(), middleware.Actor(c), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req service.UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.products.UpdateProduct(c.UserContext(), middleware.Actor(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.products.DeleteProduct(c.UserContext(), middleware.Actor(c), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// AdjustStock applies a signed delta to the product quantity.
// POST /api/v1/products/:id/stock
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req service.AdjustStockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.stock.AdjustStock(c.UserContext(), middleware.Actor(c), id, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Stock adjusted successfully",
		"data":    product,
	})
}

// GET /api/v1/products/:id/issuances
func (h *ProductHandler) GetProductIssuances(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	issuances, err := h.issuances.ListIssuancesByProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(issuances)
}
