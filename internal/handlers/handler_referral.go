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

// referralHandler handles the standalone referral-tracking endpoint.
type referralHandler struct {
	referralService portssvc.ReferralSvcFacade
}

func newReferralHandler(rs portssvc.ReferralSvcFacade) *referralHandler {
	return &referralHandler{referralService: rs}
}

// registerReferralRoutes registers the referral-tracking route.
func registerReferralRoutes(rg *gin.Engine, referralService portssvc.ReferralSvcFacade) {
	h := newReferralHandler(referralService)
	rg.POST("/api/referral", h.trackReferral)
}

// trackReferral godoc
// @Summary Track a referral
// @Description Links an existing user to a referrer and credits the referrer.
// @Tags referral
// @Accept json
// @Produce json
// @Param referral body dto.TrackReferralRequest true "Referral linkage"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /api/referral [post]
func (h *referralHandler) trackReferral(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TrackReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body: " + err.Error()})
		return
	}

	err := h.referralService.TrackReferral(c.Request.Context(), req.UserID, req.ReferrerID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyReferred):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "User already referred."})
		case errors.Is(err, apperrors.ErrReferrerNotFound):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Referrer not found."})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		default:
			logger.Error("Failed to track referral", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Error tracking referral"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Referral tracked successfully!"})
}
