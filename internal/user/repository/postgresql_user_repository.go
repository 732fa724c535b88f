// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/user/domain"

	apperrors "github.com/openshelf/openshelf/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, user_type, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, user.ID, user.Name, user.Email.String(), user.Type)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, user_type, created_at, updated_at
			  FROM users WHERE id = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}

	return user, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when no user
// exists, so callers can use it as a uniqueness probe.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, user_type, created_at, updated_at
			  FROM users WHERE email = $1`

	user, err := scanUser(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// List retrieves all users ordered by creation time.
func (r *PostgreSQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, user_type, created_at, updated_at
			  FROM users ORDER BY created_at`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user row")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate user rows")
	}

	return users, nil
}

// Update modifies an existing user.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET name = $1,
			  	  email = $2,
				  user_type = $3,
				  updated_at = NOW()
			  WHERE id = $4`

	_, err := querier.ExecContext(ctx, query, user.Name, user.Email.String(), user.Type, user.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	return nil
}

// Delete removes a user by ID. Fails with ErrUserNotFound when no row matched.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser hydrates a User from a row, re-parsing the value objects.
func scanUser(row rowScanner) (*domain.User, error) {
	var (
		id                   uuid.UUID
		name, email, rawType string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &email, &rawType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	parsedEmail, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	userType, err := domain.ParseUserType(rawType)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:        id,
		Name:      name,
		Email:     parsedEmail,
		Type:      userType,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
