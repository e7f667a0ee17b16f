package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"notblank,max=255"`
	CategoryID   uuid.UUID       `json:"category_id" validate:"uuid_required"`
	SupplierID   uuid.UUID       `json:"supplier_id" validate:"uuid_required"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	ReorderLevel *int            `json:"reorder_level" validate:"omitempty,gte=0"`
	Description  string          `json:"description" validate:"max=1000"`
}

type UpdateProductRequest struct {
	Name         string          `json:"name" validate:"notblank,max=255"`
	CategoryID   *uuid.UUID      `json:"category_id" validate:"omitempty,uuid_required"`
	SupplierID   *uuid.UUID      `json:"supplier_id" validate:"omitempty,uuid_required"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"gte=0"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Description  string          `json:"description" validate:"max=1000"`
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]model.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error)
	ListLowStock(ctx context.Context) ([]model.ProductResponse, error)
	SearchProducts(ctx context.Context, term string) ([]model.ProductResponse, error)
	CreateProduct(ctx context.Context, actor model.Actor, req CreateProductRequest) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, actor model.Actor, id uuid.UUID, req UpdateProductRequest) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

type productService struct {
	db         *gorm.DB
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	issuances  repository.IssuanceRepository
	events     events.Publisher
}

func NewProductService(
	db *gorm.DB,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	issuances repository.IssuanceRepository,
	pub events.Publisher,
) ProductService {
	return &productService{
		db:         db,
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		issuances:  issuances,
		events:     pub,
	}
}

func (s *productService) ListProducts(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return toProductResponses(products), nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrProductNotFound, "find product")
	}
	res := p.ToResponse()
	return &res, nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]model.ProductResponse, error) {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return toProductResponses(products), nil
}

// SearchProducts matches names case-insensitively. A blank term lists all.
func (s *productService) SearchProducts(ctx context.Context, term string) ([]model.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.ListProducts(ctx)
	}
	products, err := s.products.SearchByName(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return toProductResponses(products), nil
}

func (s *productService) CreateProduct(ctx context.Context, actor model.Actor, req CreateProductRequest) (*model.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, lookup(err, apperr.ErrCategoryNotFound, "find category")
	}
	supplier, err := s.suppliers.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, lookup(err, apperr.ErrSupplierNotFound, "find supplier")
	}

	reorderLevel := model.DefaultReorderLevel
	if req.ReorderLevel != nil {
		reorderLevel = *req.ReorderLevel
	}

	p := &model.Product{
		Name:         strings.TrimSpace(req.Name),
		CategoryID:   category.ID,
		SupplierID:   supplier.ID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice.Round(2),
		ReorderLevel: reorderLevel,
		Description:  req.Description,
	}
	p.CreatedBy = actor.AuditName()
	p.UpdatedBy = actor.AuditName()

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	p.Category = category
	p.Supplier = supplier

	evts := []events.Event{stockEvent(events.ProductCreated, actor, p, p.Quantity,
		fmt.Sprintf("%s created product '%s'", actor.Name, p.Name))}
	if p.LowStock() {
		evts = append(evts, stockEvent(events.StockLow, actor, p, 0,
			fmt.Sprintf("'%s' is low on stock (%d left)", p.Name, p.Quantity)))
	}
	publish(ctx, s.events, evts...)

	res := p.ToResponse()
	return &res, nil
}

// UpdateProduct overwrites the editable fields, quantity included. This is a
// direct correction and does not go through the ledger.
func (s *productService) UpdateProduct(ctx context.Context, actor model.Actor, id uuid.UUID, req UpdateProductRequest) (*model.ProductResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrProductNotFound, "find product")
	}

	if req.CategoryID != nil && *req.CategoryID != p.CategoryID {
		category, err := s.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, lookup(err, apperr.ErrCategoryNotFound, "find category")
		}
		p.CategoryID = category.ID
		p.Category = category
	}
	if req.SupplierID != nil && *req.SupplierID != p.SupplierID {
		supplier, err := s.suppliers.FindByID(ctx, *req.SupplierID)
		if err != nil {
			return nil, lookup(err, apperr.ErrSupplierNotFound, "find supplier")
		}
		p.SupplierID = supplier.ID
		p.Supplier = supplier
	}

	oldQuantity := p.Quantity
	p.Name = strings.TrimSpace(req.Name)
	p.Quantity = req.Quantity
	p.UnitPrice = req.UnitPrice.Round(2)
	p.ReorderLevel = req.ReorderLevel
	p.Description = req.Description
	p.UpdatedBy = actor.AuditName()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	evts := []events.Event{stockEvent(events.ProductUpdated, actor, p, p.Quantity-oldQuantity,
		fmt.Sprintf("%s updated product '%s'", actor.Name, p.Name))}
	if crossedLow(oldQuantity, p) {
		evts = append(evts, stockEvent(events.StockLow, actor, p, p.Quantity-oldQuantity,
			fmt.Sprintf("'%s' is low on stock (%d left)", p.Name, p.Quantity)))
	}
	publish(ctx, s.events, evts...)

	res := p.ToResponse()
	return &res, nil
}

// DeleteProduct soft-deletes the product and its issuance history together.
// Stock is not restored for the removed issuances.
func (s *productService) DeleteProduct(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	var p *model.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)

		var err error
		p, err = products.FindByID(ctx, id)
		if err != nil {
			return lookup(err, apperr.ErrProductNotFound, "find product")
		}
		if _, err := s.issuances.WithTx(tx).DeleteByProduct(ctx, id, actor.AuditName()); err != nil {
			return fmt.Errorf("delete product issuances: %w", err)
		}
		if err := products.Delete(ctx, id, actor.AuditName()); err != nil {
			return lookup(err, apperr.ErrProductNotFound, "delete product")
		}
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, s.events, stockEvent(events.ProductDeleted, actor, p, -p.Quantity,
		fmt.Sprintf("%s deleted product '%s'", actor.Name, p.Name)))
	return nil
}

func toProductResponses(products []model.Product) []model.ProductResponse {
	res := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, products[i].ToResponse())
	}
	return res
}
