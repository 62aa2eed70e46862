package Billing

import "errors"

// Validation failures are detected locally, before anything is written to the
// database. Transport/database failures are not part of this package.
var (
	ErrEmptyDiagnosis       = errors.New("diagnosis must not be empty")
	ErrNoServicesSelected   = errors.New("at least one service must be selected")
	ErrInvalidQuantity      = errors.New("service quantity must be at least 1")
	ErrUnknownService       = errors.New("service does not exist in the catalog")
	ErrDiscountNotPermitted = errors.New("doctor is not permitted to apply discounts")
	ErrInvalidDiscount      = errors.New("discount value must not be negative")
	ErrInvalidPaymentType   = errors.New("payment type must be cash or card")
)
