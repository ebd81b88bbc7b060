package models

import "errors"

// Custom errors
var (
	ErrInvalidOdds       = errors.New("invalid odds: zero has no sign convention")
	ErrInsufficientData  = errors.New("insufficient data: both outcome classes required")
	ErrNumericDegeneracy = errors.New("numeric degeneracy in feature matrix")
	ErrNotFitted         = errors.New("estimator is not fitted")
	ErrMissingOutcome    = errors.New("observation has no recorded outcome")
)
