package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the persisted representation of a user row.
type User struct {
	UserID         string          `db:"user_id"`
	FirstName      string          `db:"first_name"`
	LastName       string          `db:"last_name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Password       string          `db:"password"`
	ReferredBy     *string         `db:"referred_by"`
	ReferralsCount int64           `db:"referrals_count"`
	Balance        decimal.Decimal `db:"balance"`
	LastPurchase   *time.Time      `db:"last_purchase"`
	CreatedAt      time.Time       `db:"created_at"`
	LastUpdatedAt  time.Time       `db:"last_updated_at"`
	Version        int64           `db:"version"`
}
