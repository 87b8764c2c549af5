package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.WalletSvcFacade
	fixedNow     time.Time
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewWalletService(suite.mockUserRepo,
		services.WithWalletClock(func() time.Time { return suite.fixedNow }))
}

// --- Deposit Tests ---

func (suite *WalletServiceTestSuite) TestDeposit_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Balance: decimal.NewFromInt(100)}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Balance.Equal(decimal.NewFromInt(350))
	})).Return(nil).Once()

	updated, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(250))

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(decimal.NewFromInt(350)))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestDeposit_NonPositiveAmount() {
	ctx := context.Background()
	userID := uuid.NewString()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		updated, err := suite.service.Deposit(ctx, userID, amount)
		suite.Require().Error(err)
		suite.Nil(updated)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDeposit_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDeposit_RetriesOnVersionConflict() {
	ctx := context.Background()
	userID := uuid.NewString()

	finds := 0
	suite.mockUserRepo.FindUserByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
		finds++
		// Each attempt re-reads a fresh copy, so the credit is never doubled.
		return &domain.User{UserID: userID, Balance: decimal.NewFromInt(100)}, nil
	}
	updates := 0
	suite.mockUserRepo.UpdateUserFn = func(ctx context.Context, u domain.User) error {
		updates++
		if updates == 1 {
			return apperrors.ErrVersionConflict
		}
		suite.True(u.Balance.Equal(decimal.NewFromInt(150)))
		return nil
	}

	updated, err := suite.service.Deposit(ctx, userID, decimal.NewFromInt(50))

	suite.Require().NoError(err)
	suite.Equal(2, finds)
	suite.Equal(2, updates)
	suite.True(updated.Balance.Equal(decimal.NewFromInt(150)))
}

// --- Purchase Tests ---

func (suite *WalletServiceTestSuite) TestPurchase_DeductsAndArmsTimer() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Balance: decimal.NewFromInt(1000)}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Balance.Equal(decimal.NewFromInt(700)) &&
			u.LastPurchase != nil &&
			u.LastPurchase.Equal(suite.fixedNow)
	})).Return(nil).Once()

	updated, err := suite.service.Purchase(ctx, userID, decimal.NewFromInt(300))

	suite.Require().NoError(err)
	suite.True(updated.Balance.Equal(decimal.NewFromInt(700)))
	suite.True(updated.BonusArmed())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestPurchase_WhileArmedKeepsTimer() {
	ctx := context.Background()
	userID := uuid.NewString()
	armedAt := suite.fixedNow.Add(-6 * time.Hour)
	user := &domain.User{
		UserID:       userID,
		Balance:      decimal.NewFromInt(1000),
		LastPurchase: &armedAt,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	// The timer keeps its original arming instant.
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.LastPurchase != nil && u.LastPurchase.Equal(armedAt)
	})).Return(nil).Once()

	updated, err := suite.service.Purchase(ctx, userID, decimal.NewFromInt(200))

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.LastPurchase)
	suite.True(updated.LastPurchase.Equal(armedAt))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestPurchase_InsufficientBalance() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Balance: decimal.NewFromInt(100)}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()

	updated, err := suite.service.Purchase(ctx, userID, decimal.NewFromInt(500))

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestPurchase_ExactBalanceSucceeds() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Balance: decimal.NewFromInt(500)}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Balance.IsZero() && u.LastPurchase != nil
	})).Return(nil).Once()

	updated, err := suite.service.Purchase(ctx, userID, decimal.NewFromInt(500))

	suite.Require().NoError(err)
	suite.True(updated.Balance.IsZero())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestPurchase_NonPositivePrice() {
	ctx := context.Background()
	userID := uuid.NewString()

	updated, err := suite.service.Purchase(ctx, userID, decimal.Zero)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestPurchase_UserNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.Purchase(ctx, userID, decimal.NewFromInt(100))

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestWalletService(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
