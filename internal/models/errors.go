package models

import "errors"

// Domain errors returned by repositories and services. Handlers translate them
// into HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrForbidden         = errors.New("attempted action is not allowed")
	ErrAlreadyPaid       = errors.New("parcel is already paid")
	ErrApplicationExists = errors.New("rider application already exists for this email")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrPaymentInProgress = errors.New("payment for this parcel is already being recorded")
	ErrPaymentNotSettled = errors.New("payment intent has not succeeded")
	ErrNotPayable        = errors.New("parcel has no payable cost")
)
