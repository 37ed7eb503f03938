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

// SubjectHandler обрабатывает административный CRUD предметов
type SubjectHandler struct {
	logger         *slog.Logger
	subjectStorage storage.SubjectStorage
}

// NewSubjectHandler создает новый handler для предметов
func NewSubjectHandler(logger *slog.Logger, subjectStorage storage.SubjectStorage) *SubjectHandler {
	return &SubjectHandler{
		logger:         logger,
		subjectStorage: subjectStorage,
	}
}

// Create обрабатывает POST /api/subjects
// Предмет обязан иметь название на обоих языках интерфейса
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode subject request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.NameRu == "" || req.NameUz == "" {
		sendError(h.logger, w, "Missing fields", http.StatusBadRequest)
		return
	}

	subject := &models.Subject{
		ID:        uuid.New().String(),
		NameRu:    req.NameRu,
		NameUz:    req.NameUz,
		CreatedAt: time.Now(),
	}

	if err := h.subjectStorage.CreateSubject(ctx, subject); err != nil {
		h.logger.ErrorContext(ctx, "failed to create subject", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "subject created", slog.String("subject_id", subject.ID))

	sendJSON(h.logger, w, toAPISubject(subject), http.StatusOK)
}

// List обрабатывает GET /api/subjects
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjects, err := h.subjectStorage.ListSubjects(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list subjects", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Subject, 0, len(subjects))
	for _, subject := range subjects {
		resp = append(resp, toAPISubject(subject))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PUT /api/subjects/{id}
func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjectID := chi.URLParam(r, "id")

	var req api.SubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode subject request", slog.Any("error", err))
		sendError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.NameRu == "" || req.NameUz == "" {
		sendError(h.logger, w, "Missing fields", http.StatusBadRequest)
		return
	}

	subject := &models.Subject{
		ID:     subjectID,
		NameRu: req.NameRu,
		NameUz: req.NameUz,
	}

	if err := h.subjectStorage.UpdateSubject(ctx, subject); err != nil {
		if errors.Is(err, storage.ErrSubjectNotFound) {
			sendError(h.logger, w, "Subject not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update subject", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "subject updated", slog.String("subject_id", subjectID))

	sendJSON(h.logger, w, toAPISubject(subject), http.StatusOK)
}

// Delete обрабатывает DELETE /api/subjects/{id}
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjectID := chi.URLParam(r, "id")

	if err := h.subjectStorage.DeleteSubject(ctx, subjectID); err != nil {
		if errors.Is(err, storage.ErrSubjectNotFound) {
			sendError(h.logger, w, "Subject not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete subject", slog.Any("error", err))
		sendError(h.logger, w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "subject deleted", slog.String("subject_id", subjectID))

	sendJSON(h.logger, w, api.SuccessResponse{Success: true}, http.StatusOK)
}

func toAPISubject(subject *models.Subject) api.Subject {
	return api.Subject{
		ID:     subject.ID,
		NameRu: subject.NameRu,
		NameUz: subject.NameUz,
	}
}
