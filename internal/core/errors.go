package core

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrUnauthenticated: no actor context on the request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrProfileRequired: authenticated but no tenant profile to act under.
	ErrProfileRequired = errors.New("no tenant profile for this user")

	// ErrViewUnprovisioned: a reporting view is missing in this deployment.
	// Recoverable; callers special-case it into "no data" or a no-op.
	ErrViewUnprovisioned = errors.New("reporting view not provisioned")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

type InvalidTransitionError struct {
	Kind     string
	ID       uint
	Current  string
	Required string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %d is %s, must be %s", e.Kind, e.ID, e.Current, e.Required)
}

type InsufficientInventoryError struct {
	StockpileID uint
	Available   float64
	Requested   float64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("stockpile %d has %.2f t available, %.2f t requested",
		e.StockpileID, e.Available, e.Requested)
}

type EventPersistenceError struct {
	Err error
}

func (e *EventPersistenceError) Error() string { return "event could not be recorded: " + e.Err.Error() }
func (e *EventPersistenceError) Unwrap() error { return e.Err }

type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// HTTPError maps a core error onto the fiber error the central handler
// serializes. Every handler funnels service failures through here so the
// status mapping lives in one place.
func HTTPError(err error) error {
	var (
		ve *ValidationError
		nf *NotFoundError
		it *InvalidTransitionError
		ii *InsufficientInventoryError
		ep *EventPersistenceError
		se *StoreError
	)
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrProfileRequired):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Error())
	case errors.As(err, &nf):
		return fiber.NewError(fiber.StatusNotFound, nf.Error())
	case errors.As(err, &it):
		return fiber.NewError(fiber.StatusConflict, it.Error())
	case errors.As(err, &ii):
		return fiber.NewError(fiber.StatusUnprocessableEntity, ii.Error())
	case errors.As(err, &ep), errors.As(err, &se):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return err
}
