package dto

import (
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterRequest carries the fields a new user submits at registration.
// ReferrerID is optional; when present the referrer is credited via the
// referral linkage routine.
type RegisterRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required,phonenum"`
	Password   string `json:"password" binding:"required"`
	ReferrerID string `json:"referrerId"`
}

// UserResponse is the public profile and wallet state of a user.
type UserResponse struct {
	UserID         string          `json:"userId"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	ReferralsCount int64           `json:"referralsCount"`
	Balance        decimal.Decimal `json:"balance"`
}

// ToUserResponse converts a domain.User to its public response shape.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:         user.UserID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Phone:          user.Phone,
		ReferralsCount: user.ReferralsCount,
		Balance:        user.Balance,
	}
}

// MessageResponse is the generic message payload used by the write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
