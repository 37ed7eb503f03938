package handlers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
	"github.com/maktab-uz/maktab/pkg/api"
)

// otpAlphabet — без визуально похожих символов (0/O, 1/I/l),
// одноразовый пароль диктуют ученику вслух
const otpAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const otpLength = 8

// UserHandler обрабатывает административные запросы к пользователям
type UserHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
}

// NewUserHandler создает новый handler для пользователей
func NewUserHandler(logger *slog.Logger, userStorage storage.UserStorage) *UserHandler {
	return &UserHandler{
		logger:      logger,
		userStorage: userStorage,
	}
}

// Register обрабатывает POST /api/users/register
// Аккаунт всегда создается с временным паролем, что бы ни прислал клиент:
// первый вход потребует смену пароля.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		sendError(h.logger, w, "Missing fields", http.StatusBadRequest)
		return
	}

	if !models.ValidRole(req.Role) {
		sendError(h.logger, w, "Invalid role", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:                  uuid.New().String(),
		Username:            req.Username,
		PasswordHash:        string(hash),
		Role:                req.Role,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		School:              req.School,
		Grade:               req.Grade,
		GradeSection:        req.GradeSection,
		IsTemporaryPassword: true,
		CreatedAt:           time.Now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			sendError(h.logger, w, "User already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID),
		slog.String("role", user.Role))

	sendJSON(h.logger, w, api.RegisterUserResponse{User: toAPIUser(user)}, http.StatusOK)
}

// List обрабатывает GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.userStorage.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.User, 0, len(users))
	for _, user := range users {
		resp = append(resp, toAPIUser(user))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ResetPassword обрабатывает POST /api/users/{id}/reset-password
// Генерирует одноразовый пароль и снова поднимает флаг временного пароля.
// OTP показывается администратору один раз, хранится только его хеш.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := chi.URLParam(r, "id")
	if userID == "" {
		sendError(h.logger, w, "Missing user id", http.StatusBadRequest)
		return
	}

	if _, err := h.userStorage.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "User not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	otp, err := generateOTP()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate otp", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(otp), bcrypt.DefaultCost)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash otp", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdatePassword(ctx, userID, string(hash), true); err != nil {
		h.logger.ErrorContext(ctx, "failed to reset password", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password reset", slog.String("user_id", userID))

	sendJSON(h.logger, w, api.ResetPasswordResponse{OTP: otp}, http.StatusOK)
}

// generateOTP создает одноразовый пароль из otpAlphabet
func generateOTP() (string, error) {
	buf := make([]byte, otpLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	otp := make([]byte, otpLength)
	for i, b := range buf {
		otp[i] = otpAlphabet[int(b)%len(otpAlphabet)]
	}

	return string(otp), nil
}
