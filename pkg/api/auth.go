package api

// Формат полей на проводе — camelCase, его ожидает мобильное приложение.

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username"` // уникальный username
	Password string `json:"password"` // пароль в открытом виде (только по HTTPS)
	Role     string `json:"role"`     // заявленная роль: student | teacher | admin
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	User                  User   `json:"user"`                  // данные пользователя
	Token                 string `json:"token"`                 // подписанный bearer token (7 дней)
	RequirePasswordChange bool   `json:"requirePasswordChange"` // true если пароль временный
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePasswordResponse представляет ответ на успешную смену пароля
type ChangePasswordResponse struct {
	Success bool `json:"success"`
}

// SeedAdminRequest представляет запрос на создание первого администратора.
// Защищен заголовком X-Admin-Secret, а не bearer токеном.
type SeedAdminRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Error представляет ответ сервера с ошибкой
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"` // HTTP статус, в тело не сериализуется
}

// Error реализует интерфейс error
func (e *Error) Error() string {
	return e.Message
}
