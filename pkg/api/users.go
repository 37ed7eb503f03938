package api

// User представляет пользователя в ответах сервера
type User struct {
	ID                  string  `json:"id"`                  // UUID пользователя
	Username            string  `json:"username"`            // уникальный username
	Role                string  `json:"role"`                // student | teacher | admin
	FirstName           string  `json:"firstName"`           // имя
	LastName            string  `json:"lastName"`            // фамилия
	School              string  `json:"school"`              // название школы
	Grade               *int    `json:"grade"`               // класс (1-11), null для не-учеников
	GradeSection        *string `json:"gradeSection"`        // буква класса ("А", "Б"), null для не-учеников
	IsTemporaryPassword bool    `json:"isTemporaryPassword"` // требуется ли принудительная смена пароля
}

// RegisterUserRequest представляет запрос администратора на создание аккаунта
type RegisterUserRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"` // выданный временный пароль
	Role         string  `json:"role"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	School       string  `json:"school"`
	Grade        *int    `json:"grade,omitempty"`
	GradeSection *string `json:"gradeSection,omitempty"`
}

// RegisterUserResponse представляет ответ на создание аккаунта
type RegisterUserResponse struct {
	User User `json:"user"`
}

// ResetPasswordResponse представляет ответ на сброс пароля администратором
type ResetPasswordResponse struct {
	OTP string `json:"otp"` // одноразовый пароль, показывается один раз
}
