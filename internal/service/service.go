package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"inventory-tracker/internal/apperr"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/model"
	"inventory-tracker/pkg/validator"
)

// validate runs struct validation and folds every failure into one
// InvalidArgument error.
func validate(req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	details := make([]apperr.FieldError, 0, len(errs))
	for _, e := range errs {
		details = append(details, apperr.FieldError{Field: e.FailedField, Message: e.Message})
	}
	return apperr.ErrValidation.Msgf("validation failed: %s", errs[0].Message).WithDetails(details...)
}

// lookup maps a missing row to notFound and wraps anything else.
func lookup(err error, notFound *apperr.Error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func eventActor(a model.Actor) events.Actor {
	return events.Actor{ID: a.UserID, Name: a.Name, Email: a.Email}
}

// stockEvent builds an event describing p after a change of delta units.
func stockEvent(t events.Type, actor model.Actor, p *model.Product, delta int, msg string) events.Event {
	evt := events.New(t, p.ID, p.Name, p.Quantity)
	evt.Delta = delta
	evt.Actor = eventActor(actor)
	evt.Message = msg
	return evt
}

// publish delivers events after commit. Delivery failures never fail the
// operation; the fan-out logs them.
func publish(ctx context.Context, pub events.Publisher, evts ...events.Event) {
	for _, evt := range evts {
		_ = pub.Publish(ctx, evt)
	}
}

// crossedLow reports a transition from healthy stock to low stock.
func crossedLow(before int, p *model.Product) bool {
	return before > p.ReorderLevel && p.LowStock()
}
