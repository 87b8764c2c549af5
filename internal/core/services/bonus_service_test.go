package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BonusServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.BonusSvcFacade
	fixedNow     time.Time
}

func (suite *BonusServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.fixedNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	suite.service = services.NewBonusService(suite.mockUserRepo,
		services.WithBonusClock(func() time.Time { return suite.fixedNow }))
}

func (suite *BonusServiceTestSuite) armedUser(balance int64, armedAgo time.Duration) domain.User {
	armedAt := suite.fixedNow.Add(-armedAgo)
	return domain.User{
		UserID:       uuid.NewString(),
		Balance:      decimal.NewFromInt(balance),
		LastPurchase: &armedAt,
	}
}

func (suite *BonusServiceTestSuite) TestRunSweep_MaturedAccountGetsBonus() {
	ctx := context.Background()
	user := suite.armedUser(1000, 25*time.Hour)

	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == user.UserID &&
			u.Balance.Equal(decimal.NewFromInt(1400)) &&
			u.LastPurchase == nil
	})).Return(nil).Once()

	result, err := suite.service.RunSweep(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, result.Scanned)
	suite.Equal(1, result.Bonused)
	suite.Zero(result.Failed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *BonusServiceTestSuite) TestRunSweep_ImmatureAccountUntouched() {
	ctx := context.Background()
	user := suite.armedUser(1000, 10*time.Hour)

	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{user}, nil).Once()

	result, err := suite.service.RunSweep(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, result.Scanned)
	suite.Zero(result.Bonused)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *BonusServiceTestSuite) TestRunSweep_ExactlyAtDelayIsDue() {
	ctx := context.Background()
	user := suite.armedUser(500, domain.BonusDelay)

	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Balance.Equal(decimal.NewFromInt(700)) && u.LastPurchase == nil
	})).Return(nil).Once()

	result, err := suite.service.RunSweep(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, result.Bonused)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *BonusServiceTestSuite) TestRunSweep_OneFailureDoesNotStopTheSweep() {
	ctx := context.Background()
	failing := suite.armedUser(1000, 30*time.Hour)
	healthy := suite.armedUser(2000, 30*time.Hour)

	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{failing, healthy}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == failing.UserID
	})).Return(assert.AnError).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == healthy.UserID && u.Balance.Equal(decimal.NewFromInt(2800))
	})).Return(nil).Once()

	result, err := suite.service.RunSweep(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, result.Scanned)
	suite.Equal(1, result.Bonused)
	suite.Equal(1, result.Failed)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *BonusServiceTestSuite) TestRunSweep_ScanError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return(nil, expectedErr).Once()

	result, err := suite.service.RunSweep(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Zero(result.Scanned)
}

func (suite *BonusServiceTestSuite) TestRunSweep_AppliedBonusIsNotRepeated() {
	ctx := context.Background()
	user := suite.armedUser(1000, 25*time.Hour)

	// First sweep credits and disarms.
	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{user}, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	// A disarmed account no longer matches the pending-bonus scan.
	suite.mockUserRepo.On("FindUsersWithPendingBonus", ctx).Return([]domain.User{}, nil).Once()

	first, err := suite.service.RunSweep(ctx)
	suite.Require().NoError(err)
	suite.Equal(1, first.Bonused)

	second, err := suite.service.RunSweep(ctx)
	suite.Require().NoError(err)
	suite.Zero(second.Scanned)
	suite.Zero(second.Bonused)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestBonusService(t *testing.T) {
	suite.Run(t, new(BonusServiceTestSuite))
}
