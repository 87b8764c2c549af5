package services

import (
	"errors"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
)

// retryOnConflict re-runs fn once if the first attempt lost an optimistic
// update race. fn must re-read its state on each call.
func retryOnConflict(fn func() error) error {
	err := fn()
	if errors.Is(err, apperrors.ErrVersionConflict) {
		return fn()
	}
	return err
}
