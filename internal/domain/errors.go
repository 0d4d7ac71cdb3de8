package domain

import "errors"

var (
	ErrNotFound           = errors.New("entity not found")
	ErrNotOpen            = errors.New("donation or request is not open")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotDeletable       = errors.New("only delivered matches can be deleted")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
)
