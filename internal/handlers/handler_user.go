package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/dto"
	"github.com/Wisdomtrail/smartBackend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles profile reads and the wallet endpoints.
type userHandler struct {
	userService   portssvc.UserSvcFacade
	walletService portssvc.WalletSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, ws portssvc.WalletSvcFacade) *userHandler {
	return &userHandler{
		userService:   us,
		walletService: ws,
	}
}

// registerUserRoutes registers the profile and wallet routes. The /user/me
// route requires a bearer token; everything else matches the public surface.
func registerUserRoutes(rg *gin.Engine, jwtSecret string, userService portssvc.UserSvcFacade, walletService portssvc.WalletSvcFacade) {
	h := newUserHandler(userService, walletService)

	users := rg.Group("/user")
	{
		users.GET("/me", middleware.AuthMiddleware(jwtSecret), h.getMe)
		users.GET("/:id", h.getUser)
		users.POST("/deposit", h.deposit)
		users.POST("/buy-product", h.buyProduct)
	}
}

// getUser godoc
// @Summary Get a user by ID
// @Description Retrieves the public profile and wallet state of a user.
// @Tags user
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /user/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("id")

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		} else {
			logger.Error("Failed to get user from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error fetching user data"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getMe godoc
// @Summary Get the authenticated user
// @Description Retrieves the profile of the user identified by the bearer token.
// @Tags user
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /user/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		} else {
			logger.Error("Failed to get user from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error fetching user data"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deposit godoc
// @Summary Deposit funds
// @Description Credits a positive amount to the user's balance.
// @Tags user
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit"
// @Success 200 {object} dto.DepositResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /user/deposit [post]
func (h *userHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid deposit amount"})
		return
	}

	user, err := h.walletService.Deposit(c.Request.Context(), req.UserID, req.DepositAmount)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid deposit amount"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		default:
			logger.Error("Failed to process deposit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error processing deposit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DepositResponse{
		Message: "Balance updated successfully",
		Balance: user.Balance,
	})
}

// buyProduct godoc
// @Summary Buy a product
// @Description Deducts the product price from the balance; the first purchase arms the 24h bonus timer.
// @Tags user
// @Accept json
// @Produce json
// @Param purchase body dto.PurchaseRequest true "Purchase"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /user/buy-product [post]
func (h *userHandler) buyProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid product price"})
		return
	}

	_, err := h.walletService.Purchase(c.Request.Context(), req.UserID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid product price"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Insufficient balance"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		default:
			logger.Error("Failed to process purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error processing the purchase"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Purchase successful, bonus will be added in 24 hours."})
}
