package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/Wisdomtrail/smartBackend/internal/core/ports/repositories"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
)

// bonusService implements the BonusSvcFacade interface. It is the state
// machine behind the daily sweep: Armed accounts whose timer has matured get
// the purchase bonus and return to Idle in a single update.
type bonusService struct {
	BaseService
	userRepo portsrepo.UserRepository
	now      func() time.Time
}

// BonusOption is a functional option for configuring the bonus service
type BonusOption func(*bonusService)

// WithBonusClock overrides the clock the sweep measures elapsed time against.
func WithBonusClock(now func() time.Time) BonusOption {
	return func(s *bonusService) {
		s.now = now
	}
}

// NewBonusService creates the bonus sweep service.
func NewBonusService(userRepo portsrepo.UserRepository, options ...BonusOption) portssvc.BonusSvcFacade {
	svc := &bonusService{
		userRepo: userRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BonusSvcFacade = (*bonusService)(nil)

// RunSweep applies the purchase bonus to every account armed for at least the
// bonus delay. The bonus is 40% of the balance as it stands at sweep time, so
// deposits or purchases made while armed change the payout. One account's
// failure never stops the sweep.
func (s *bonusService) RunSweep(ctx context.Context) (portssvc.SweepResult, error) {
	result := portssvc.SweepResult{}

	armed, err := s.userRepo.FindUsersWithPendingBonus(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to scan accounts with pending bonus")
		return result, fmt.Errorf("failed to scan armed accounts: %w", err)
	}
	result.Scanned = len(armed)

	now := s.now()
	for i := range armed {
		user := armed[i]
		if !user.BonusDue(now) {
			continue
		}

		bonus := user.ApplyPurchaseBonus()
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			result.Failed++
			s.LogError(ctx, err, "Failed to apply purchase bonus, skipping account",
				slog.String("user_id", user.UserID))
			continue
		}

		result.Bonused++
		s.LogInfo(ctx, "Added 40% bonus to user balance",
			slog.String("user_id", user.UserID),
			slog.String("bonus", bonus.String()),
			slog.String("balance", user.Balance.String()))
	}

	s.LogInfo(ctx, "Bonus sweep completed",
		slog.Int("scanned", result.Scanned),
		slog.Int("bonused", result.Bonused),
		slog.Int("failed", result.Failed))
	return result, nil
}
