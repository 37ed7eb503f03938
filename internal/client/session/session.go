// Package session держит состояние входа клиента: токен, пользователя,
// флаг принудительной смены пароля, активный экран и язык интерфейса.
package session

import (
	"errors"
	"sync"

	"github.com/maktab-uz/maktab/pkg/api"
)

// State представляет состояние сессии
type State string

const (
	// StateLoggedOut — токена нет, доступен только вход
	StateLoggedOut State = "logged_out"
	// StatePendingPasswordChange — вход выполнен, но сервер требует
	// сменить временный пароль; никакое другое действие недоступно
	StatePendingPasswordChange State = "pending_password_change"
	// StateActive — вход выполнен, пароль постоянный
	StateActive State = "active"
)

// Языки интерфейса
const (
	LangRu = "ru"
	LangUz = "uz"
)

var (
	// ErrPasswordChangeRequired — действие недоступно до смены временного пароля
	ErrPasswordChangeRequired = errors.New("password change required")

	// ErrNotLoggedIn — действие требует выполненного входа
	ErrNotLoggedIn = errors.New("not logged in")
)

// Data — сериализуемое содержимое сессии
type Data struct {
	Token                 string   `json:"token"`
	User                  api.User `json:"user"`
	RequirePasswordChange bool     `json:"require_password_change"`
	ActiveRoute           string   `json:"active_route"`
	Language              string   `json:"language"`
}

// Session — процессное состояние входа. Переходы атомарны относительно
// конкурентных читателей.
type Session struct {
	mu   sync.Mutex
	data Data
}

// New создает пустую сессию с языком по умолчанию
func New() *Session {
	return &Session{
		data: Data{Language: LangRu},
	}
}

// Restore создает сессию из сохраненных данных
func Restore(data Data) *Session {
	if data.Language == "" {
		data.Language = LangRu
	}
	return &Session{data: data}
}

// State возвращает текущее состояние
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.data.Token == "":
		return StateLoggedOut
	case s.data.RequirePasswordChange:
		return StatePendingPasswordChange
	default:
		return StateActive
	}
}

// ApplyLogin заполняет сессию результатом успешного входа.
// Токен, пользователь и флаг смены пароля записываются одним переходом.
func (s *Session) ApplyLogin(resp *api.LoginResponse) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Token = resp.Token
	s.data.User = resp.User
	s.data.RequirePasswordChange = resp.RequirePasswordChange
	s.data.ActiveRoute = ""

	return s.stateLocked()
}

// PasswordChanged снимает флаг принудительной смены пароля.
// Единственный переход PendingPasswordChange -> Active.
func (s *Session) PasswordChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.RequirePasswordChange = false
}

// Logout очищает сессию безусловно. Токен на сервере не отзывается —
// он истечет сам; выбранный язык переживает выход.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Data{Language: s.data.Language}
}

// Token возвращает текущий токен или ErrNotLoggedIn / ErrPasswordChangeRequired.
// Пока требуется смена пароля, токен не выдается ни для чего, кроме
// самой смены пароля (TokenForPasswordChange).
func (s *Session) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stateLocked() {
	case StateLoggedOut:
		return "", ErrNotLoggedIn
	case StatePendingPasswordChange:
		return "", ErrPasswordChangeRequired
	}

	return s.data.Token, nil
}

// TokenForPasswordChange возвращает токен для операции смены пароля,
// доступен и в состоянии PendingPasswordChange
func (s *Session) TokenForPasswordChange() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Token == "" {
		return "", ErrNotLoggedIn
	}

	return s.data.Token, nil
}

// User возвращает текущего пользователя
func (s *Session) User() (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Token == "" {
		return api.User{}, ErrNotLoggedIn
	}

	return s.data.User, nil
}

// SetRoute запоминает активный экран.
// В состоянии PendingPasswordChange навигация запрещена.
func (s *Session) SetRoute(route string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stateLocked() {
	case StateLoggedOut:
		return ErrNotLoggedIn
	case StatePendingPasswordChange:
		return ErrPasswordChangeRequired
	}

	s.data.ActiveRoute = route
	return nil
}

// Route возвращает активный экран
func (s *Session) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ActiveRoute
}

// SetLanguage переключает язык интерфейса, доступно в любом состоянии
func (s *Session) SetLanguage(lang string) error {
	if lang != LangRu && lang != LangUz {
		return errors.New("unsupported language")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Language = lang
	return nil
}

// Language возвращает язык интерфейса
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Language
}

// Snapshot возвращает копию данных сессии для сохранения
func (s *Session) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}
