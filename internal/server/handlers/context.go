package handlers

// contextKey — отдельный тип для ключей контекста, чтобы не пересекаться
// с ключами других пакетов
type contextKey string

const (
	// UserIDKey — ключ контекста с ID аутентифицированного пользователя
	UserIDKey contextKey = "user_id"
	// RoleKey — ключ контекста с ролью аутентифицированного пользователя
	RoleKey contextKey = "role"
)
