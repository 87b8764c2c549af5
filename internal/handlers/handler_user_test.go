package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/dto"
	"github.com/Wisdomtrail/smartBackend/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockUserService   *MockUserService
	mockWalletService *MockWalletService
	jwtSecret         string
}

func (suite *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockUserService = new(MockUserService)
	suite.mockWalletService = new(MockWalletService)

	cfg := testConfig()
	suite.jwtSecret = cfg.JWTSecret

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:     suite.mockUserService,
		Referral: new(MockReferralService),
		Wallet:   suite.mockWalletService,
		Bonus:    new(MockBonusService),
	})
}

// generateTestToken creates a signed JWT for the given user.
func (suite *UserHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "smart-backend-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *UserHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- GetUser Tests ---

func (suite *UserHandlerTestSuite) TestGetUser_Success() {
	user := &domain.User{
		UserID:         uuid.NewString(),
		FirstName:      "Ada",
		LastName:       "Obi",
		Email:          "ada@example.com",
		Phone:          "+2348012345678",
		ReferralsCount: 3,
		Balance:        decimal.NewFromInt(1500),
	}

	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/user/"+user.UserID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.UserID)
	suite.Equal(int64(3), resp.ReferralsCount)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(1500)))
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestGetUser_NotFound() {
	userID := uuid.NewString()

	suite.mockUserService.On("GetUserByID", mock.Anything, userID).Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/user/"+userID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "User not found")
}

// --- GetMe Tests ---

func (suite *UserHandlerTestSuite) TestGetMe_Success() {
	user := &domain.User{UserID: uuid.NewString(), FirstName: "Ada"}

	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(user.UserID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.UserID)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestGetMe_MissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *UserHandlerTestSuite) TestGetMe_InvalidToken() {
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Deposit Tests ---

func (suite *UserHandlerTestSuite) TestDeposit_Success() {
	userID := uuid.NewString()
	amount := decimal.NewFromInt(250)
	updated := &domain.User{UserID: userID, Balance: decimal.NewFromInt(350)}

	suite.mockWalletService.On("Deposit", mock.Anything, userID, amount).Return(updated, nil).Once()

	w := suite.performJSON(http.MethodPost, "/user/deposit", dto.DepositRequest{
		UserID:        userID,
		DepositAmount: amount,
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DepositResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Balance updated successfully", resp.Message)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(350)))
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestDeposit_InvalidAmount() {
	userID := uuid.NewString()
	amount := decimal.NewFromInt(-10)

	suite.mockWalletService.On("Deposit", mock.Anything, userID, amount).Return(nil, apperrors.ErrValidation).Once()

	w := suite.performJSON(http.MethodPost, "/user/deposit", dto.DepositRequest{
		UserID:        userID,
		DepositAmount: amount,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid deposit amount")
}

func (suite *UserHandlerTestSuite) TestDeposit_UserNotFound() {
	userID := uuid.NewString()
	amount := decimal.NewFromInt(100)

	suite.mockWalletService.On("Deposit", mock.Anything, userID, amount).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodPost, "/user/deposit", dto.DepositRequest{
		UserID:        userID,
		DepositAmount: amount,
	})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "User not found")
}

// --- BuyProduct Tests ---

func (suite *UserHandlerTestSuite) TestBuyProduct_Success() {
	userID := uuid.NewString()
	price := decimal.NewFromInt(300)
	updated := &domain.User{UserID: userID, Balance: decimal.NewFromInt(700)}

	suite.mockWalletService.On("Purchase", mock.Anything, userID, price).Return(updated, nil).Once()

	w := suite.performJSON(http.MethodPost, "/user/buy-product", dto.PurchaseRequest{
		UserID: userID,
		Price:  price,
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Purchase successful, bonus will be added in 24 hours.")
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *UserHandlerTestSuite) TestBuyProduct_InsufficientBalance() {
	userID := uuid.NewString()
	price := decimal.NewFromInt(5000)

	suite.mockWalletService.On("Purchase", mock.Anything, userID, price).Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.performJSON(http.MethodPost, "/user/buy-product", dto.PurchaseRequest{
		UserID: userID,
		Price:  price,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Insufficient balance")
}

func (suite *UserHandlerTestSuite) TestBuyProduct_InvalidPrice() {
	userID := uuid.NewString()
	price := decimal.Zero

	suite.mockWalletService.On("Purchase", mock.Anything, userID, price).Return(nil, apperrors.ErrValidation).Once()

	w := suite.performJSON(http.MethodPost, "/user/buy-product", dto.PurchaseRequest{
		UserID: userID,
		Price:  price,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid product price")
}

func (suite *UserHandlerTestSuite) TestBuyProduct_UserNotFound() {
	userID := uuid.NewString()
	price := decimal.NewFromInt(100)

	suite.mockWalletService.On("Purchase", mock.Anything, userID, price).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodPost, "/user/buy-product", dto.PurchaseRequest{
		UserID: userID,
		Price:  price,
	})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(w.Body.String(), "User not found")
}

// --- Run Suite ---
func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
