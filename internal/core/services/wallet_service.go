package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portsrepo "github.com/Wisdomtrail/smartBackend/internal/core/ports/repositories"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// walletService implements the WalletSvcFacade interface
type walletService struct {
	BaseService
	userRepo portsrepo.UserRepository
	now      func() time.Time
}

// WalletOption is a functional option for configuring the wallet service
type WalletOption func(*walletService)

// WithWalletClock overrides the clock used to arm the bonus timer. Tests use
// this to make arming deterministic.
func WithWalletClock(now func() time.Time) WalletOption {
	return func(s *walletService) {
		s.now = now
	}
}

// NewWalletService creates the wallet service with the provided options.
func NewWalletService(userRepo portsrepo.UserRepository, options ...WalletOption) portssvc.WalletSvcFacade {
	svc := &walletService{
		userRepo: userRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

func (s *walletService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("deposit amount must be positive: %w", apperrors.ErrValidation)
	}

	var user *domain.User
	err := retryOnConflict(func() error {
		var err error
		user, err = s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			return err
		}
		user.Balance = user.Balance.Add(amount)
		return s.userRepo.UpdateUser(ctx, *user)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to process deposit", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to process deposit for user %s: %w", userID, err)
	}

	s.LogInfo(ctx, "Deposit applied",
		slog.String("user_id", userID),
		slog.String("amount", amount.String()))
	return user, nil
}

func (s *walletService) Purchase(ctx context.Context, userID string, price decimal.Decimal) (*domain.User, error) {
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("product price must be positive: %w", apperrors.ErrValidation)
	}

	var user *domain.User
	err := retryOnConflict(func() error {
		var err error
		user, err = s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Balance.LessThan(price) {
			return apperrors.ErrInsufficientFunds
		}
		user.Balance = user.Balance.Sub(price)
		// First purchase after a bonus cycle arms the timer; purchases while
		// already armed leave it untouched.
		user.ArmBonus(s.now())
		return s.userRepo.UpdateUser(ctx, *user)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInsufficientFunds) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to process purchase", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to process purchase for user %s: %w", userID, err)
	}

	s.LogInfo(ctx, "Purchase applied",
		slog.String("user_id", userID),
		slog.String("price", price.String()),
		slog.Bool("bonus_armed", user.BonusArmed()))
	return user, nil
}
