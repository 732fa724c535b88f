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

// MySQLUserRepository handles user persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, name, email, user_type, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, uuidBytes, user.Name, user.Email.String(), user.Type)
	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, user_type, created_at, updated_at
			  FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	user, err := scanUserMySQL(querier.QueryRowContext(ctx, query, uuidBytes))
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
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, email, user_type, created_at, updated_at
			  FROM users WHERE email = ?`

	user, err := scanUserMySQL(querier.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get user by email")
	}

	return user, nil
}

// List retrieves all users ordered by creation time.
func (r *MySQLUserRepository) List(ctx context.Context) ([]*domain.User, error) {
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
		user, err := scanUserMySQL(rows)
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
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users
			  SET name = ?,
			  	  email = ?,
				  user_type = ?,
				  updated_at = NOW()
			  WHERE id = ?`

	uuidBytes, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, user.Name, user.Email.String(), user.Type, uuidBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update user")
	}

	return nil
}

// Delete removes a user by ID. Fails with ErrUserNotFound when no row matched.
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = ?`

	uuidBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, uuidBytes)
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

// scanUserMySQL hydrates a User from a row, converting the BINARY(16) ID
// back to a UUID and re-parsing the value objects.
func scanUserMySQL(row rowScanner) (*domain.User, error) {
	var (
		idBytes              []byte
		name, email, rawType string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&idBytes, &name, &email, &rawType, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
