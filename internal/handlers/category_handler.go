package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"glosskeep/internal/model"
	"glosskeep/internal/service"
	"glosskeep/internal/webutil"
)

type CategoryHandler struct {
	categories service.CategoryService
	queries    service.QueryService
	logger     *slog.Logger
}

func NewCategoryHandler(categories service.CategoryService, queries service.QueryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{categories: categories, queries: queries, logger: logger}
}

// ListCategories serves GET /api/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListCategories"))

	categories, err := h.categories.GetCategories(r.Context())
	if err != nil {
		logger.Error("Error listing categories", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if categories == nil {
		categories = []*model.Category{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, categories, logger)
}

// ListLearningPaths serves GET /api/learning-paths.
func (h *CategoryHandler) ListLearningPaths(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListLearningPaths"))

	paths := h.queries.ListLearningPaths(r.Context())
	if paths == nil {
		paths = []*model.LearningPath{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, paths, logger)
}

// CreateCategory serves POST /api/categories (admin).
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateCategory"))

	var req model.CreateCategoryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for a category.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), &req)
	if err != nil {
		if !errors.Is(err, model.ErrConflict) {
			logger.Error("Error creating category", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category created", slog.Int("category_id", category.ID), slog.String("name", category.Name))
	webutil.RespondWithJSON(w, http.StatusCreated, category, logger)
}

// UpdateCategory serves PUT /api/categories/{id} (admin rename).
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateCategory"))

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		appErr := model.NewAppError("INVALID_URL_PARAM", "Category id must be a positive integer.", "id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.UpdateCategoryRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for a category update.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrConflict) && !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Error updating category", slog.Any("error", err), slog.Int("category_id", id))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Category updated", slog.Int("category_id", id))
	webutil.RespondWithJSON(w, http.StatusOK, category, logger)
}
