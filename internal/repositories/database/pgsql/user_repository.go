package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wisdomtrail/smartBackend/internal/apperrors"
	"github.com/Wisdomtrail/smartBackend/internal/core/domain"
	portsrepo "github.com/Wisdomtrail/smartBackend/internal/core/ports/repositories"
	"github.com/Wisdomtrail/smartBackend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	return models.User{
		UserID:         d.UserID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		Password:       d.Password,
		ReferredBy:     d.ReferredBy,
		ReferralsCount: d.ReferralsCount,
		Balance:        d.Balance,
		LastPurchase:   d.LastPurchase,
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
		Version:        d.Version,
	}
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:         m.UserID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		Password:       m.Password,
		ReferredBy:     m.ReferredBy,
		ReferralsCount: m.ReferralsCount,
		Balance:        m.Balance,
		LastPurchase:   m.LastPurchase,
		CreatedAt:      m.CreatedAt,
		LastUpdatedAt:  m.LastUpdatedAt,
		Version:        m.Version,
	}
}

const userColumns = `user_id, first_name, last_name, email, phone, password, referred_by, referrals_count, balance, last_purchase, created_at, last_updated_at, version`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.Password,
		&m.ReferredBy,
		&m.ReferralsCount,
		&m.Balance,
		&m.LastPurchase,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.Version,
	)
	return m, err
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        INSERT INTO users (user_id, first_name, last_name, email, phone, password, referred_by, referrals_count, balance, last_purchase, created_at, last_updated_at, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1);
    `
	_, err := r.db.Exec(ctx, query,
		modelUser.UserID,
		modelUser.FirstName,
		modelUser.LastName,
		modelUser.Email,
		modelUser.Phone,
		modelUser.Password,
		modelUser.ReferredBy,
		modelUser.ReferralsCount,
		modelUser.Balance,
		modelUser.LastPurchase,
		modelUser.CreatedAt,
		modelUser.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return fmt.Errorf("%w: user with this email or phone already exists", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1;`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by phone: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	modelUser, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	domainUser := toDomainUser(modelUser)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUsersWithPendingBonus(ctx context.Context) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE last_purchase IS NOT NULL
        ORDER BY last_purchase ASC;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users with pending bonus: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		modelUser, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(modelUser))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return users, nil
}

// UpdateUser writes the user's mutable state guarded by the version column.
// Zero rows affected means either the user is gone or a concurrent writer bumped
// the version first; the two cases map to different errors.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	modelUser := toModelUser(user)
	query := `
        UPDATE users
        SET referred_by = $1, referrals_count = $2, balance = $3, last_purchase = $4, last_updated_at = now(), version = version + 1
        WHERE user_id = $5 AND version = $6;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		modelUser.ReferredBy,
		modelUser.ReferralsCount,
		modelUser.Balance,
		modelUser.LastPurchase,
		modelUser.UserID,
		modelUser.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindUserByID(ctx, user.UserID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("user %s was updated concurrently: %w", user.UserID, apperrors.ErrVersionConflict)
	}
	return nil
}
