package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
)

const userColumns = `id, username, password_hash, role, first_name, last_name, school, grade, grade_section, is_temporary_password, created_at`

// CreateUser creates a new user in the storage
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.FirstName,
		user.LastName,
		user.School,
		user.Grade,
		user.GradeSection,
		user.IsTemporaryPassword,
		user.CreatedAt,
	)

	if err != nil {
		// Проверяем на duplicate username
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.username") {
			return storage.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

// GetUserByUsernameAndRole retrieves user matching both username and role
func (s *Storage) GetUserByUsernameAndRole(ctx context.Context, username, role string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? AND role = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username, role))
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return s.scanUser(s.db.QueryRowContext(ctx, query, userID))
}

// ListUsers returns all users, newest first
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdatePassword replaces the stored hash and sets the temporary-password flag
func (s *Storage) UpdatePassword(ctx context.Context, userID, passwordHash string, temporary bool) error {
	query := `UPDATE users SET password_hash = ?, is_temporary_password = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, passwordHash, temporary, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanUser(row *sql.Row) (*models.User, error) {
	user, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func scanUserRow(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var grade sql.NullInt64
	var gradeSection sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.School,
		&grade,
		&gradeSection,
		&user.IsTemporaryPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if grade.Valid {
		g := int(grade.Int64)
		user.Grade = &g
	}
	if gradeSection.Valid {
		user.GradeSection = &gradeSection.String
	}

	return user, nil
}
