package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"

	"github.com/shashankb2004/edublog/internal/domain"
	internal_errors "github.com/shashankb2004/edublog/internal/errors"
)

const uniqueViolation = "23505"

// =========================================================================
// Public Methods (satisfy the service.AuthStorage interface)
// =========================================================================

// SaveUser inserts a new user record. The unique indexes on LOWER(username)
// and LOWER(email) are the last line of defense against a signup race; a
// violation maps to the same conflict errors the service pre-check produces.
func (s *Storage) SaveUser(user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var saved domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.saveUser(tx, user)
		return err
	})
	return saved, err
}

// UserByUsername fetches a user by username, case-insensitively.
func (s *Storage) UserByUsername(username string) (domain.User, error) {
	return s.user(s.db, "LOWER(username) = LOWER($1)", username)
}

func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.user(s.db, "id = $1", id)
}

// UserExists reports whether the email or username is already taken,
// case-insensitively.
func (s *Storage) UserExists(username, email string) (emailTaken, usernameTaken bool, err error) {
	err = s.db.QueryRow(`
		SELECT
			EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1)),
			EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($2))`,
		email, username).Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return emailTaken, usernameTaken, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Storage) UpdatePassword(id domain.UserId, passHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePassword(tx, id, passHash)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// These methods accept a Querier and are transaction-agnostic.
// =========================================================================

func (s *Storage) saveUser(q Querier, user domain.User) (domain.User, error) {
	err := q.QueryRow(
		"INSERT INTO users(username, email, password_hash) VALUES($1, $2, $3) RETURNING id, created_at",
		user.Username, user.Email, user.PassHash).Scan(&user.Id, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			if pqErr.Constraint == "users_email_lower_key" {
				return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
			}
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusBadRequest}
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (s *Storage) user(q Querier, where string, arg interface{}) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(
		"SELECT id, username, email, password_hash, created_at FROM users WHERE "+where, arg).
		Scan(&user.Id, &user.Username, &user.Email, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

func (s *Storage) updatePassword(q Querier, id domain.UserId, passHash string) error {
	result, err := q.Exec("UPDATE users SET password_hash = $1 WHERE id = $2", passHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
