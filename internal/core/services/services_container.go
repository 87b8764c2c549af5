package services

import (
	portsrepo "github.com/Wisdomtrail/smartBackend/internal/core/ports/repositories"
	portssvc "github.com/Wisdomtrail/smartBackend/internal/core/ports/services"
	"github.com/Wisdomtrail/smartBackend/internal/platform/config"
	"github.com/Wisdomtrail/smartBackend/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, userRepo portsrepo.UserRepository) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	verifier := utils.NewPasswordVerifier(cfg.PasswordScheme)

	// The referral service first: registration depends on its linkage routine.
	container.Referral = NewReferralService(userRepo)
	container.User = NewUserService(userRepo, container.Referral, verifier)
	container.Wallet = NewWalletService(userRepo)
	container.Bonus = NewBonusService(userRepo)

	return container
}
