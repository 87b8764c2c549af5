package services

import (
	"context"

	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	"github.com/Wisdomtrail/smartBackend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a new user, crediting the referrer when one is named.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Authenticate verifies a phone/password pair and returns the matching user.
	Authenticate(ctx context.Context, phone, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
