package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralBonus is the flat amount credited to a referrer's balance each time
// a new user names them as referrer.
var ReferralBonus = decimal.NewFromInt(1000)

// PurchaseBonusRate is the fraction of the current balance paid out once a
// purchase has been pending for BonusDelay.
var PurchaseBonusRate = decimal.NewFromFloat(0.40)

// BonusDelay is how long after an arming purchase the purchase bonus becomes due.
const BonusDelay = 24 * time.Hour

// User represents a registered user's profile and wallet state.
type User struct {
	UserID         string          `json:"userID"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Password       string          `json:"-"` // opaque credential, scheme decided by the verifier
	ReferredBy     *string         `json:"referredBy,omitempty"`
	ReferralsCount int64           `json:"referralsCount"`
	Balance        decimal.Decimal `json:"balance"`
	LastPurchase   *time.Time      `json:"lastPurchase,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	Version        int64           `json:"-"` // optimistic-concurrency counter, managed by the repository
}

// BonusArmed reports whether a purchase has started the bonus timer and the
// bonus has not yet been applied.
func (u *User) BonusArmed() bool {
	return u.LastPurchase != nil
}

// ArmBonus starts the bonus timer at t. A timer that is already running is
// left untouched: subsequent purchases do not re-arm or extend it.
func (u *User) ArmBonus(t time.Time) {
	if u.LastPurchase == nil {
		u.LastPurchase = &t
	}
}

// BonusDue reports whether the armed bonus has matured at time now.
func (u *User) BonusDue(now time.Time) bool {
	return u.LastPurchase != nil && now.Sub(*u.LastPurchase) >= BonusDelay
}

// ApplyPurchaseBonus credits the purchase bonus, computed on the balance as it
// stands right now, and disarms the timer.
func (u *User) ApplyPurchaseBonus() decimal.Decimal {
	bonus := u.Balance.Mul(PurchaseBonusRate)
	u.Balance = u.Balance.Add(bonus)
	u.LastPurchase = nil
	return bonus
}
