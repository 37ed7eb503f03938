package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/internal/server/storage"
	"github.com/maktab-uz/maktab/pkg/api"
)

// ClassHandler обрабатывает административный CRUD классов
type ClassHandler struct {
	logger       *slog.Logger
	classStorage storage.ClassStorage
}

// NewClassHandler создает новый handler для классов
func NewClassHandler(logger *slog.Logger, classStorage storage.ClassStorage) *ClassHandler {
	return &ClassHandler{
		logger:       logger,
		classStorage: classStorage,
	}
}

// Create обрабатывает POST /api/classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode class request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Grade == 0 {
		sendError(h.logger, w, "Missing grade", http.StatusBadRequest)
		return
	}

	class := &models.Class{
		ID:        uuid.New().String(),
		Grade:     req.Grade,
		Name:      req.Name,
		TeacherID: req.TeacherID,
		CreatedAt: time.Now(),
	}

	if err := h.classStorage.CreateClass(ctx, class); err != nil {
		h.logger.ErrorContext(ctx, "failed to create class", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "class created", slog.String("class_id", class.ID), slog.Int("grade", class.Grade))

	sendJSON(h.logger, w, toAPIClass(class), http.StatusOK)
}

// List обрабатывает GET /api/classes
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	classes, err := h.classStorage.ListClasses(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list classes", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Class, 0, len(classes))
	for _, class := range classes {
		resp = append(resp, toAPIClass(class))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /api/classes/{id}
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	classID := chi.URLParam(r, "id")

	if err := h.classStorage.DeleteClass(ctx, classID); err != nil {
		if errors.Is(err, storage.ErrClassNotFound) {
			sendError(h.logger, w, "Class not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete class", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "class deleted", slog.String("class_id", classID))

	sendJSON(h.logger, w, api.SuccessResponse{Success: true}, http.StatusOK)
}

func toAPIClass(class *models.Class) api.Class {
	return api.Class{
		ID:        class.ID,
		Grade:     class.Grade,
		Name:      class.Name,
		TeacherID: class.TeacherID,
	}
}
