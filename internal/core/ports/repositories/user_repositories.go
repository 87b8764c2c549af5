package repositories

import (
	"context"

	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByPhone retrieves a user by their phone number.
	FindUserByPhone(ctx context.Context, phone string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersWithPendingBonus retrieves every user whose bonus timer is armed.
	FindUsersWithPendingBonus(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email or phone is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's wallet and referral state using the
	// user's Version for compare-and-swap. Returns apperrors.ErrVersionConflict
	// when a concurrent writer got there first.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepository combines all user-related repository operations.
type UserRepository interface {
	UserReader
	UserWriter
}
