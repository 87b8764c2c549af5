package services

import (
	"context"

	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
)

// ReferralLinkerSvc is the single shared referral-linkage routine. Both call
// sites (registration and the tracking endpoint) go through it so the
// bookkeeping invariant lives in exactly one place.
type ReferralLinkerSvc interface {
	// LinkReferral binds target to the referrer identified by referrerID: it
	// sets target.ReferredBy, increments the referrer's count and credits the
	// referral bonus. The referrer is persisted; the caller persists target.
	// Returns apperrors.ErrNotFound when the referrer does not exist and
	// apperrors.ErrAlreadyReferred when target already has a referrer.
	LinkReferral(ctx context.Context, target *domain.User, referrerID string) error
}

// ReferralSvcFacade combines the linkage routine with the endpoint-facing
// tracking operation.
type ReferralSvcFacade interface {
	ReferralLinkerSvc

	// TrackReferral links an already-registered user to a referrer.
	TrackReferral(ctx context.Context, userID, referrerID string) error
}
