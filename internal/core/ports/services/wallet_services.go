package services

import (
	"context"

	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletSvcFacade exposes the balance mutations driven by user requests.
type WalletSvcFacade interface {
	// Deposit credits amount to the user's balance. Amount must be positive.
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error)

	// Purchase deducts price from the user's balance and arms the bonus timer
	// when it is not already running.
	Purchase(ctx context.Context, userID string, price decimal.Decimal) (*domain.User, error)
}
