package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/internal/client/session"
	"github.com/maktab-uz/maktab/internal/client/storage"
	"github.com/maktab-uz/maktab/pkg/api"
)

// Service предоставляет функции авторизации клиента
type Service struct {
	apiClient *clientapi.Client
	store     storage.SessionStorage
	session   *session.Session
}

// NewService создает сервис авторизации, восстанавливая сохраненную сессию
func NewService(ctx context.Context, apiClient *clientapi.Client, store storage.SessionStorage) (*Service, error) {
	s := &Service{
		apiClient: apiClient,
		store:     store,
	}

	data, err := store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			s.session = session.New()
			return s, nil
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	s.session = session.Restore(*data)
	return s, nil
}

// Session возвращает состояние сессии
func (s *Service) Session() *session.Session {
	return s.session
}

// Login выполняет вход и сохраняет сессию локально.
// Возвращает состояние сессии после входа: Active либо
// PendingPasswordChange, если сервер требует сменить временный пароль.
func (s *Service) Login(ctx context.Context, username, password, role string) (session.State, error) {
	resp, err := s.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return s.session.State(), err
	}

	state := s.session.ApplyLogin(resp)

	if err := s.persist(ctx); err != nil {
		return state, err
	}

	slog.Info("logged in", "username", resp.User.Username, "role", resp.User.Role, "state", string(state))

	return state, nil
}

// ApplyLogin применяет готовый ответ входа (например, после seed-admin)
// и сохраняет сессию локально
func (s *Service) ApplyLogin(ctx context.Context, resp *api.LoginResponse) (session.State, error) {
	state := s.session.ApplyLogin(resp)
	if err := s.persist(ctx); err != nil {
		return state, err
	}
	return state, nil
}

// ChangePassword меняет пароль на сервере и снимает локальный флаг
// принудительной смены. Сервер сам перепроверяет текущий пароль.
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	token, err := s.session.TokenForPasswordChange()
	if err != nil {
		return err
	}

	if err := s.apiClient.ChangePassword(ctx, token, api.ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}); err != nil {
		return err
	}

	s.session.PasswordChanged()

	if err := s.persist(ctx); err != nil {
		return err
	}

	slog.Info("password changed")

	return nil
}

// Logout очищает локальную сессию. Сервер не уведомляется:
// отзыва токенов нет, bearer token истечет сам через 7 дней.
func (s *Service) Logout(ctx context.Context) error {
	s.session.Logout()

	if err := s.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to delete local session: %w", err)
	}

	slog.Info("logged out")

	return nil
}

// SetLanguage переключает язык интерфейса и сохраняет выбор
func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if err := s.session.SetLanguage(lang); err != nil {
		return err
	}
	return s.persist(ctx)
}

// persist сохраняет снимок сессии в локальное хранилище
func (s *Service) persist(ctx context.Context) error {
	data := s.session.Snapshot()
	if err := s.store.SaveSession(ctx, &data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
