package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"notblank,max=255"`
	Description string `json:"description"`
}

type SupplierRequest struct {
	Name    string `json:"name" validate:"notblank,max=255"`
	Contact string `json:"contact" validate:"notblank,max=255"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Address string `json:"address" validate:"max=500"`
}

// CatalogService manages the categories and suppliers products refer to.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	CreateCategory(ctx context.Context, actor model.Actor, req CategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, actor model.Actor, id uuid.UUID, req CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, actor model.Actor, id uuid.UUID) error

	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	CreateSupplier(ctx context.Context, actor model.Actor, req SupplierRequest) (*model.Supplier, error)
	UpdateSupplier(ctx context.Context, actor model.Actor, id uuid.UUID, req SupplierRequest) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

type catalogService struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	products   repository.ProductRepository
	stats      StatsInvalidator
}

// NewCatalogService drops the cached dashboard stats whenever the number of
// categories or suppliers changes.
func NewCatalogService(
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	stats StatsInvalidator,
) CatalogService {
	return &catalogService{categories: categories, suppliers: suppliers, products: products, stats: stats}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrCategoryNotFound, "find category")
	}
	return c, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, actor model.Actor, req CategoryRequest) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := s.checkCategoryName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	c := &model.Category{Name: name, Description: req.Description}
	c.CreatedBy = actor.AuditName()
	c.UpdatedBy = actor.AuditName()
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidateStats(ctx)
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, actor model.Actor, id uuid.UUID, req CategoryRequest) (*model.Category, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrCategoryNotFound, "find category")
	}
	name := strings.TrimSpace(req.Name)
	if err := s.checkCategoryName(ctx, name, id); err != nil {
		return nil, err
	}

	c.Name = name
	c.Description = req.Description
	c.UpdatedBy = actor.AuditName()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *catalogService) checkCategoryName(ctx context.Context, name string, self uuid.UUID) error {
	exists, err := s.categories.ExistsByName(ctx, name, self)
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if exists {
		return apperr.ErrCategoryExists
	}
	return nil
}

// DeleteCategory refuses while any product still belongs to the category.
func (s *catalogService) DeleteCategory(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return lookup(err, apperr.ErrCategoryNotFound, "find category")
	}
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if n > 0 {
		return apperr.ErrCategoryInUse.Msgf("category is referenced by %d products", n)
	}
	if err := s.categories.Delete(ctx, id, actor.AuditName()); err != nil {
		return lookup(err, apperr.ErrCategoryNotFound, "delete category")
	}
	s.invalidateStats(ctx)
	return nil
}

func (s *catalogService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *catalogService) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrSupplierNotFound, "find supplier")
	}
	return sup, nil
}

func (s *catalogService) CreateSupplier(ctx context.Context, actor model.Actor, req SupplierRequest) (*model.Supplier, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	email := supplierEmail(req.Email)
	if err := s.checkSupplierEmail(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	sup := &model.Supplier{
		Name:    strings.TrimSpace(req.Name),
		Contact: strings.TrimSpace(req.Contact),
		Email:   email,
		Address: req.Address,
	}
	sup.CreatedBy = actor.AuditName()
	sup.UpdatedBy = actor.AuditName()
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	s.invalidateStats(ctx)
	return sup, nil
}

func (s *catalogService) UpdateSupplier(ctx context.Context, actor model.Actor, id uuid.UUID, req SupplierRequest) (*model.Supplier, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrSupplierNotFound, "find supplier")
	}
	email := supplierEmail(req.Email)
	if err := s.checkSupplierEmail(ctx, email, id); err != nil {
		return nil, err
	}

	sup.Name = strings.TrimSpace(req.Name)
	sup.Contact = strings.TrimSpace(req.Contact)
	sup.Email = email
	sup.Address = req.Address
	sup.UpdatedBy = actor.AuditName()
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return sup, nil
}

func (s *catalogService) checkSupplierEmail(ctx context.Context, email *string, self uuid.UUID) error {
	if email == nil {
		return nil
	}
	exists, err := s.suppliers.ExistsByEmail(ctx, *email, self)
	if err != nil {
		return fmt.Errorf("check supplier email: %w", err)
	}
	if exists {
		return apperr.ErrSupplierExists
	}
	return nil
}

// DeleteSupplier refuses while any product is still sourced from the supplier.
func (s *catalogService) DeleteSupplier(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if _, err := s.suppliers.FindByID(ctx, id); err != nil {
		return lookup(err, apperr.ErrSupplierNotFound, "find supplier")
	}
	n, err := s.products.CountBySupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("count supplier products: %w", err)
	}
	if n > 0 {
		return apperr.ErrSupplierInUse.Msgf("supplier is referenced by %d products", n)
	}
	if err := s.suppliers.Delete(ctx, id, actor.AuditName()); err != nil {
		return lookup(err, apperr.ErrSupplierNotFound, "delete supplier")
	}
	s.invalidateStats(ctx)
	return nil
}

// supplierEmail normalizes an optional email; blank means none.
func supplierEmail(s string) *string {
	e := model.NormalizeEmail(s)
	if e == "" {
		return nil
	}
	return &e
}

// invalidateStats never fails the request; on error the cached figures stay
// stale until their TTL.
func (s *catalogService) invalidateStats(ctx context.Context) {
	_ = s.stats.Invalidate(ctx)
}
