package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyReferred indicates that a user already has a referrer linked.
var ErrAlreadyReferred = errors.New("user already referred")

// ErrReferrerNotFound narrows ErrNotFound to the referrer lookup, so handlers
// can tell a missing referrer from a missing target user. errors.Is against
// ErrNotFound still matches.
var ErrReferrerNotFound = fmt.Errorf("referrer: %w", ErrNotFound)

// ErrInsufficientFunds indicates that a balance is too low to cover a deduction.
var ErrInsufficientFunds = errors.New("insufficient balance")

// ErrVersionConflict indicates that an optimistic-concurrency update lost the race.
var ErrVersionConflict = errors.New("version conflict")
