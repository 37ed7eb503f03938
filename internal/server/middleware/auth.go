package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/handlers"
	"github.com/maktab-uz/maktab/pkg/api"
)

// AuthMiddleware создает middleware для проверки bearer токена.
// Любой дефект токена (отсутствие, формат, подпись, срок) — 401 Unauthorized.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", "path", r.URL.Path)
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format", "path", r.URL.Path)
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("invalid token", "error", err, "path", r.URL.Path)
				writeError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.RoleKey, claims.Role)

			logger.Debug("user authenticated", "user_id", claims.UserID, "role", claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin создает middleware, пропускающий только администраторов.
// Работает после AuthMiddleware: токен уже валиден, проверяется только роль,
// поэтому отказ — 403 Forbidden, а не 401.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(handlers.RoleKey).(string)
			if !ok || role != models.RoleAdmin {
				logger.Warn("admin route rejected", "role", role, "path", r.URL.Path)
				writeError(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError отправляет JSON ошибку в формате {"message": ...}
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Error{Message: message})
}
