package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
	"github.com/maktab-uz/maktab/pkg/api"
)

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	jwtConfig   JWTConfig
	seedSecret  string
}

// NewAuthHandler создает новый handler для аутентификации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, jwtConfig JWTConfig, seedSecret string) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		jwtConfig:   jwtConfig,
		seedSecret:  seedSecret,
	}
}

// Login обрабатывает POST /api/auth/login
// Пользователь ищется по паре (username, role): нельзя войти под ролью,
// которая аккаунту не назначена. Несуществующий пользователь и неверный
// пароль дают один и тот же ответ.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		sendError(h.logger, w, "Missing credentials", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsernameAndRole(ctx, req.Username, req.Role)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: no user for username and role",
				slog.String("username", req.Username),
				slog.String("role", req.Role))
			sendError(h.logger, w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
		sendError(h.logger, w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := GenerateToken(h.jwtConfig, user.ID, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID),
		slog.String("role", user.Role))

	resp := api.LoginResponse{
		User:                  toAPIUser(user),
		Token:                 token,
		RequirePasswordChange: user.IsTemporaryPassword,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ChangePassword обрабатывает POST /api/auth/change-password
// Текущий пароль перепроверяется на сервере, состоянию клиента не доверяем.
// Успешная смена — единственный путь, снимающий флаг временного пароля.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		sendError(h.logger, w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode change-password request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		sendError(h.logger, w, "Missing fields", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		h.logger.WarnContext(ctx, "change password failed: invalid current password", slog.String("user_id", userID))
		sendError(h.logger, w, "Invalid password", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdatePassword(ctx, userID, string(hash), false); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))

	sendJSON(h.logger, w, api.ChangePasswordResponse{Success: true}, http.StatusOK)
}

// SeedAdmin обрабатывает POST /api/auth/seed-admin
// Bootstrap первого администратора. Вместо bearer токена — общий секрет
// в заголовке X-Admin-Secret. Созданный этим путем аккаунт сразу имеет
// постоянный пароль.
func (h *AuthHandler) SeedAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	secret := r.Header.Get("X-Admin-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(h.seedSecret)) != 1 {
		h.logger.WarnContext(ctx, "seed-admin rejected: bad secret")
		sendError(h.logger, w, "Forbidden", http.StatusForbidden)
		return
	}

	var req api.SeedAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode seed-admin request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		sendError(h.logger, w, "Username and password required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "User already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create admin", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateToken(h.jwtConfig, user.ID, user.Role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate token", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "admin seeded", slog.String("username", user.Username), slog.String("user_id", user.ID))

	resp := api.LoginResponse{
		User:                  toAPIUser(user),
		Token:                 token,
		RequirePasswordChange: false,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// toAPIUser конвертирует модель в формат ответа без хеша пароля
func toAPIUser(user *models.User) api.User {
	return api.User{
		ID:                  user.ID,
		Username:            user.Username,
		Role:                user.Role,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		School:              user.School,
		Grade:               user.Grade,
		GradeSection:        user.GradeSection,
		IsTemporaryPassword: user.IsTemporaryPassword,
	}
}
