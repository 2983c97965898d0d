package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrAlreadyPaid         = errors.New("order already paid")
	ErrNotCancellable      = errors.New("order can no longer be cancelled")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrWalletCapExceeded   = errors.New("wallet balance cap exceeded")
	ErrEmptyOrder          = errors.New("order has no items")
	ErrMaintenanceMode     = errors.New("ordering is disabled for maintenance")
	ErrForbidden           = errors.New("operation not permitted for role")
	ErrInvalidSchedule     = errors.New("invalid scheduled time")
	ErrMissingLocation     = errors.New("delivery location required")
	ErrInvalidInput        = errors.New("invalid input")
)
