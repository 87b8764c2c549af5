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
	"github.com/Wisdomtrail/smartBackend/internal/dto"
	"github.com/Wisdomtrail/smartBackend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
	linker   portssvc.ReferralLinkerSvc
	verifier utils.PasswordVerifier
}

// NewUserService creates the user service. The linker is the shared referral
// routine; registration delegates to it when a referrer is named.
func NewUserService(userRepo portsrepo.UserRepository, linker portssvc.ReferralLinkerSvc, verifier utils.PasswordVerifier) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		linker:   linker,
		verifier: verifier,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	// Reject duplicates before any side effect: a taken email or phone must
	// not credit the referrer.
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if _, err := s.userRepo.FindUserByPhone(ctx, req.Phone); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone uniqueness: %w", err)
	}

	stored, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password for storage: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      stored,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if req.ReferrerID != "" {
		if err := s.linker.LinkReferral(ctx, &user, req.ReferrerID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.Bool("referred", user.ReferredBy != nil))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user by phone: %w", err)
	}

	if !s.verifier.Verify(password, user.Password) {
		return nil, fmt.Errorf("password mismatch: %w", apperrors.ErrValidation)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}
