package storage

import (
	"context"

	"github.com/maktab-uz/maktab/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if username is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByUsernameAndRole retrieves user matching both username and role.
	// Роль — часть ключа поиска: пользователь не может войти под чужой ролью.
	// Returns ErrUserNotFound if no such pair exists
	GetUserByUsernameAndRole(ctx context.Context, username, role string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers returns all users, newest first
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdatePassword replaces the stored hash and sets the temporary-password flag.
	// Единственные два пути изменения флага: смена пароля (false) и сброс (true).
	// Returns ErrUserNotFound if user doesn't exist
	UpdatePassword(ctx context.Context, userID, passwordHash string, temporary bool) error
}
