package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portsrepo "github.com/Wisdomtrail/smartBackend/internal/core/ports/repositories"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
)

// referralService implements the ReferralSvcFacade interface. It is the only
// place referral bookkeeping happens; registration and the tracking endpoint
// both call LinkReferral.
type referralService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewReferralService creates the referral service.
func NewReferralService(userRepo portsrepo.UserRepository) portssvc.ReferralSvcFacade {
	return &referralService{userRepo: userRepo}
}

var _ portssvc.ReferralSvcFacade = (*referralService)(nil)

// LinkReferral binds target to the referrer: the referrer's count goes up by
// one, the referral bonus is credited to their balance, and target.ReferredBy
// is set. The referrer is persisted here; the caller persists target so the
// registration path can fold the linkage into the initial save.
func (s *referralService) LinkReferral(ctx context.Context, target *domain.User, referrerID string) error {
	if target.ReferredBy != nil {
		return apperrors.ErrAlreadyReferred
	}

	err := retryOnConflict(func() error {
		referrer, err := s.userRepo.FindUserByID(ctx, referrerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%s: %w", referrerID, apperrors.ErrReferrerNotFound)
			}
			return fmt.Errorf("failed to find referrer %s: %w", referrerID, err)
		}

		referrer.ReferralsCount++
		referrer.Balance = referrer.Balance.Add(domain.ReferralBonus)
		return s.userRepo.UpdateUser(ctx, *referrer)
	})
	if err != nil {
		return err
	}

	refID := referrerID
	target.ReferredBy = &refID

	s.LogInfo(ctx, "Referral linked",
		slog.String("referrer_id", referrerID),
		slog.String("referred_user_id", target.UserID))
	return nil
}

// TrackReferral links an already-registered user to a referrer.
func (s *referralService) TrackReferral(ctx context.Context, userID, referrerID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to find user %s: %w", userID, err)
	}

	if err := s.LinkReferral(ctx, user, referrerID); err != nil {
		return err
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to persist referred user",
			slog.String("user_id", userID))
		return fmt.Errorf("failed to persist referred user %s: %w", userID, err)
	}
	return nil
}
