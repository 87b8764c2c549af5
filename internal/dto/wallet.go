package dto

import "github.com/shopspring/decimal"

// DepositRequest credits an amount to a user's balance.
type DepositRequest struct {
	UserID        string          `json:"userId" binding:"required"`
	DepositAmount decimal.Decimal `json:"depositAmount"`
}

// DepositResponse echoes the updated balance, as the deposit endpoint has
// always done.
type DepositResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

// PurchaseRequest deducts a product price from a user's balance and may arm
// the bonus timer.
type PurchaseRequest struct {
	UserID string          `json:"userId" binding:"required"`
	Price  decimal.Decimal `json:"price"`
}
