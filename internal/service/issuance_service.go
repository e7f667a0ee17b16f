package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/model"
	"inventory-tracker/internal/repository"
)

type CreateIssuanceRequest struct {
	ProductID      uuid.UUID `json:"product_id" validate:"uuid_required"`
	QuantityIssued int       `json:"quantity_issued" validate:"min=1"`
	IssuedTo       string    `json:"issued_to" validate:"notblank,max=255"`
	Purpose        string    `json:"purpose" validate:"max=500"`
}

// IssuanceService records stock leaving inventory. Creating an issuance
// decrements stock and deleting it restores the same amount.
type IssuanceService interface {
	CreateIssuance(ctx context.Context, actor model.Actor, req CreateIssuanceRequest) (*model.IssuanceResponse, error)
	DeleteIssuance(ctx context.Context, actor model.Actor, id uuid.UUID) error
	ListIssuances(ctx context.Context) ([]model.IssuanceResponse, error)
	GetIssuance(ctx context.Context, id uuid.UUID) (*model.IssuanceResponse, error)
	ListIssuancesByDateRange(ctx context.Context, start, end time.Time) ([]model.IssuanceResponse, error)
	ListIssuancesByProduct(ctx context.Context, productID uuid.UUID) ([]model.IssuanceResponse, error)
}

type IssuanceOption func(*issuanceService)

// WithClock overrides the clock used to stamp issue dates.
func WithClock(now func() time.Time) IssuanceOption {
	return func(s *issuanceService) { s.now = now }
}

type issuanceService struct {
	db        *gorm.DB
	ledger    *StockLedger
	products  repository.ProductRepository
	users     repository.UserRepository
	issuances repository.IssuanceRepository
	events    events.Publisher
	now       func() time.Time
}

func NewIssuanceService(
	db *gorm.DB,
	ledger *StockLedger,
	products repository.ProductRepository,
	users repository.UserRepository,
	issuances repository.IssuanceRepository,
	pub events.Publisher,
	opts ...IssuanceOption,
) IssuanceService {
	s := &issuanceService{
		db:        db,
		ledger:    ledger,
		products:  products,
		users:     users,
		issuances: issuances,
		events:    pub,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *issuanceService) CreateIssuance(ctx context.Context, actor model.Actor, req CreateIssuanceRequest) (*model.IssuanceResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		record  model.IssuanceRecord
		product *model.Product
		change  *StockChange
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.products.WithTx(tx).FindByID(ctx, req.ProductID)
		if err != nil {
			return lookup(err, apperr.ErrProductNotFound, "find product")
		}

		user, err := s.users.WithTx(tx).FindByID(ctx, actor.UserID)
		if err != nil {
			return lookup(err, apperr.ErrUserNotFound, "find acting user")
		}

		if product.Quantity < req.QuantityIssued {
			return apperr.InsufficientStock(product.Quantity, req.QuantityIssued)
		}

		change, err = s.ledger.ApplyDelta(ctx, tx, actor, product.ID, -req.QuantityIssued)
		if err != nil {
			return err
		}

		record = model.IssuanceRecord{
			ProductID:      product.ID,
			UserID:         user.ID,
			QuantityIssued: req.QuantityIssued,
			IssuedTo:       req.IssuedTo,
			IssueDate:      model.DateOf(s.now()),
			Purpose:        req.Purpose,
		}
		record.CreatedBy = actor.AuditName()
		record.UpdatedBy = actor.AuditName()
		if err := s.issuances.WithTx(tx).Create(ctx, &record); err != nil {
			return fmt.Errorf("create issuance: %w", err)
		}

		record.Product = change.Product
		record.User = user
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInsufficientStock && product != nil {
			publish(ctx, s.events, stockEvent(events.StockRejected, actor, product, -req.QuantityIssued, err.Error()))
		}
		return nil, err
	}

	p := change.Product
	created := stockEvent(events.IssuanceCreated, actor, p, -req.QuantityIssued,
		fmt.Sprintf("%s issued %d units of '%s' to %s", actor.Name, req.QuantityIssued, p.Name, req.IssuedTo))
	created.IssuanceID = &record.ID
	evts := []events.Event{created}
	if crossedLow(change.OldQuantity, p) {
		evts = append(evts, stockEvent(events.StockLow, actor, p, -req.QuantityIssued,
			fmt.Sprintf("'%s' is low on stock (%d left)", p.Name, p.Quantity)))
	}
	publish(ctx, s.events, evts...)

	res := record.ToResponse()
	return &res, nil
}

func (s *issuanceService) DeleteIssuance(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	var (
		record *model.IssuanceRecord
		change *StockChange
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		issuances := s.issuances.WithTx(tx)

		var err error
		record, err = issuances.FindByID(ctx, id)
		if err != nil {
			return lookup(err, apperr.ErrIssuanceNotFound, "find issuance")
		}

		change, err = s.ledger.ApplyDelta(ctx, tx, actor, record.ProductID, record.QuantityIssued)
		if err != nil {
			return err
		}

		if err := issuances.Delete(ctx, id, actor.AuditName()); err != nil {
			return lookup(err, apperr.ErrIssuanceNotFound, "delete issuance")
		}
		return nil
	})
	if err != nil {
		return err
	}

	p := change.Product
	evt := stockEvent(events.IssuanceDeleted, actor, p, record.QuantityIssued,
		fmt.Sprintf("%s reversed issuance of %d units of '%s'", actor.Name, record.QuantityIssued, p.Name))
	evt.IssuanceID = &record.ID
	publish(ctx, s.events, evt)
	return nil
}

func (s *issuanceService) ListIssuances(ctx context.Context) ([]model.IssuanceResponse, error) {
	records, err := s.issuances.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	return toIssuanceResponses(records), nil
}

func (s *issuanceService) GetIssuance(ctx context.Context, id uuid.UUID) (*model.IssuanceResponse, error) {
	record, err := s.issuances.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, apperr.ErrIssuanceNotFound, "find issuance")
	}
	res := record.ToResponse()
	return &res, nil
}

// ListIssuancesByDateRange returns issuances dated within [start, end]. Only
// the calendar date of each bound is used. An inverted range is empty.
func (s *issuanceService) ListIssuancesByDateRange(ctx context.Context, start, end time.Time) ([]model.IssuanceResponse, error) {
	from, to := model.DateOf(start), model.DateOf(end)
	if time.Time(from).After(time.Time(to)) {
		return []model.IssuanceResponse{}, nil
	}
	records, err := s.issuances.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list issuances by date range: %w", err)
	}
	return toIssuanceResponses(records), nil
}

func (s *issuanceService) ListIssuancesByProduct(ctx context.Context, productID uuid.UUID) ([]model.IssuanceResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, lookup(err, apperr.ErrProductNotFound, "find product")
	}
	records, err := s.issuances.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list issuances by product: %w", err)
	}
	return toIssuanceResponses(records), nil
}

func toIssuanceResponses(records []model.IssuanceRecord) []model.IssuanceResponse {
	res := make([]model.IssuanceResponse, 0, len(records))
	for i := range records {
		res = append(res, records[i].ToResponse())
	}
	return res
}
