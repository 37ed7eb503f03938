package models

import "time"

// Роли пользователей. Роль фиксируется при создании аккаунта
// и не меняется за время его жизни.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ValidRole проверяет, что роль входит в список допустимых
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// User представляет пользователя в системе
type User struct {
	ID                  string    `json:"id"`            // UUID пользователя
	Username            string    `json:"username"`      // уникальный username
	PasswordHash        string    `json:"-"`             // bcrypt хеш пароля, наружу не отдается
	Role                string    `json:"role"`          // student | teacher | admin
	FirstName           string    `json:"first_name"`    // имя
	LastName            string    `json:"last_name"`     // фамилия
	School              string    `json:"school"`        // название школы
	Grade               *int      `json:"grade"`         // класс, nil для не-учеников
	GradeSection        *string   `json:"grade_section"` // буква класса, nil для не-учеников
	IsTemporaryPassword bool      `json:"is_temporary_password"`
	CreatedAt           time.Time `json:"created_at"`
}
