package handler

import (
	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/service"
)

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Product   *ProductHandler
	Catalog   *CatalogHandler
	Issuance  *IssuanceHandler
	User      *UserHandler
	Role      *RoleHandler
}

// RegisterRoutes mounts the API. Everything except /auth requires a bearer
// token and the privilege named on the route.
func RegisterRoutes(app fiber.Router, authService service.AuthService, h Handlers) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/reset-password", h.Auth.ResetPassword)
	auth.Post("/validate-token", h.Auth.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(authService))
	can := middleware.RequirePrivilege

	// Dashboard
	protected.Get("/dashboard/stats", can(model.PrivDashboardView), h.Dashboard.GetDashboardStats)

	// Products (static paths before /:id)
	protected.Get("/products", can(model.PrivProductView), h.Product.GetProducts)
	protected.Post("/products", can(model.PrivProductCreate), h.Product.CreateProduct)
	protected.Get("/products/low-stock", can(model.PrivProductView), h.Product.GetLowStock)
	protected.Get("/products/search", can(model.PrivProductView), h.Product.SearchProducts)
	protected.Get("/products/:id", can(model.PrivProductView), h.Product.GetProduct)
	protected.Put("/products/:id", can(model.PrivProductUpdate), h.Product.UpdateProduct)
	protected.Delete("/products/:id", can(model.PrivProductDelete), h.Product.DeleteProduct)
	protected.Post("/products/:id/stock", can(model.PrivStockAdjust), h.Product.AdjustStock)
	protected.Get("/products/:id/issuances", can(model.PrivIssuanceView), h.Product.GetProductIssuances)

	// Categories
	protected.Get("/categories", can(model.PrivCategoryView), h.Catalog.GetCategories)
	protected.Post("/categories", can(model.PrivCategoryManage), h.Catalog.CreateCategory)
	protected.Get("/categories/:id", can(model.PrivCategoryView), h.Catalog.GetCategory)
	protected.Put("/categories/:id", can(model.PrivCategoryManage), h.Catalog.UpdateCategory)
	protected.Delete("/categories/:id", can(model.PrivCategoryManage), h.Catalog.DeleteCategory)

	// Suppliers
	protected.Get("/suppliers", can(model.PrivSupplierView), h.Catalog.GetSuppliers)
	protected.Post("/suppliers", can(model.PrivSupplierManage), h.Catalog.CreateSupplier)
	protected.Get("/suppliers/:id", can(model.PrivSupplierView), h.Catalog.GetSupplier)
	protected.Put("/suppliers/:id", can(model.PrivSupplierManage), h.Catalog.UpdateSupplier)
	protected.Delete("/suppliers/:id", can(model.PrivSupplierManage), h.Catalog.DeleteSupplier)

	// Issuances
	protected.Get("/issuances", can(model.PrivIssuanceView), h.Issuance.GetIssuances)
	protected.Post("/issuances", can(model.PrivIssuanceCreate), h.Issuance.CreateIssuance)
	protected.Get("/issuances/date-range", can(model.PrivIssuanceView), h.Issuance.GetIssuancesByDateRange)
	protected.Get("/issuances/:id", can(model.PrivIssuanceView), h.Issuance.GetIssuance)
	protected.Delete("/issuances/:id", can(model.PrivIssuanceDelete), h.Issuance.DeleteIssuance)

	// User management
	protected.Get("/users", can(model.PrivUserView), h.User.GetUsers)
	protected.Post("/users", can(model.PrivUserManage), h.User.CreateUser)
	protected.Get("/users/:id", can(model.PrivUserView), h.User.GetUser)
	protected.Put("/users/:id", can(model.PrivUserManage), h.User.UpdateUser)
	protected.Delete("/users/:id", can(model.PrivUserManage), h.User.DeleteUser)

	// Roles and privileges
	protected.Get("/roles", can(model.PrivUserView), h.Role.GetRoles)
	protected.Get("/privileges", can(model.PrivUserView), h.Role.GetPrivileges)
}
