package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/maktab-uz/maktab/internal/server/handlers"
	"github.com/maktab-uz/maktab/internal/server/middleware"
	"github.com/maktab-uz/maktab/internal/server/storage"
)

// Storage объединяет все интерфейсы хранилища, которые нужны серверу
type Storage interface {
	storage.UserStorage
	storage.ClassStorage
	storage.SubjectStorage
}

// Config содержит настройки HTTP сервера
type Config struct {
	Addr       string
	JWTSecret  string
	SeedSecret string
}

// Server представляет HTTP сервер API
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New создает сервер с полностью собранным роутером
func New(logger *slog.Logger, store Storage, cfg Config) *Server {
	jwtConfig := handlers.JWTConfig{
		Secret:   []byte(cfg.JWTSecret),
		TokenTTL: handlers.TokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, jwtConfig, cfg.SeedSecret)
	userHandler := handlers.NewUserHandler(logger, store)
	classHandler := handlers.NewClassHandler(logger, store)
	subjectHandler := handlers.NewSubjectHandler(logger, store)
	healthHandler := handlers.NewHealthHandler(logger)

	requireAuth := middleware.AuthMiddleware(logger, jwtConfig)
	requireAdmin := middleware.RequireAdmin(logger)

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.CORSMiddleware)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Подбор пароля тормозится на уровне IP
			r.With(httprate.LimitByIP(10, time.Minute)).Post("/login", authHandler.Login)
			r.Post("/seed-admin", authHandler.SeedAdmin)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		// Административные маршруты: сначала токен, затем роль
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(requireAdmin)

			r.Post("/users/register", userHandler.Register)
			r.Get("/users", userHandler.List)
			r.Post("/users/{id}/reset-password", userHandler.ResetPassword)

			r.Post("/classes", classHandler.Create)
			r.Get("/classes", classHandler.List)
			r.Delete("/classes/{id}", classHandler.Delete)

			r.Post("/subjects", subjectHandler.Create)
			r.Get("/subjects", subjectHandler.List)
			r.Put("/subjects/{id}", subjectHandler.Update)
			r.Delete("/subjects/{id}", subjectHandler.Delete)
		})
	})

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до его остановки
func (s *Server) Run() error {
	s.logger.Info("API server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler возвращает корневой http.Handler для тестов
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
