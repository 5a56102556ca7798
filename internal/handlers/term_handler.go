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

type TermHandler struct {
	terms   service.TermService
	queries service.QueryService
	logger  *slog.Logger
}

func NewTermHandler(terms service.TermService, queries service.QueryService, logger *slog.Logger) *TermHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TermHandler{terms: terms, queries: queries, logger: logger}
}

func filterFromQuery(r *http.Request) service.TermFilter {
	q := r.URL.Query()
	return service.TermFilter{
		Category:     q.Get("category"),
		Search:       q.Get("search"),
		LearningPath: q.Get("path"),
	}
}

// ListTerms serves GET /api/terms with optional category, search and path
// query parameters.
func (h *TermHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ListTerms"))

	terms, err := h.queries.ListTerms(r.Context(), filterFromQuery(r))
	if err != nil {
		logger.Error("Error listing terms", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if terms == nil {
		terms = []*model.Term{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, terms, logger)
}

// GetTerm serves GET /api/terms/{id}.
func (h *TermHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTerm"))

	id, err := termIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	term, err := h.terms.GetTerm(r.Context(), id)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error getting term", slog.Any("error", err), slog.Int("term_id", id))
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, term, logger)
}

// NeighborsResponse carries the terms adjacent to the focused one in the
// current list order. Either side is null at the edges, or both when the
// focused term is outside the active filter.
type NeighborsResponse struct {
	Previous *model.Term `json:"previous"`
	Next     *model.Term `json:"next"`
}

// GetNeighbors serves GET /api/terms/{id}/neighbors with the same query
// parameters as ListTerms, so the ordering matches the rendered list.
func (h *TermHandler) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNeighbors"))

	id, err := termIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	prev, next, err := h.queries.Neighbors(r.Context(), filterFromQuery(r), id)
	if err != nil {
		logger.Error("Error computing neighbors", slog.Any("error", err), slog.Int("term_id", id))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, NeighborsResponse{Previous: prev, Next: next}, logger)
}

// ResolveTerm serves GET /api/terms/resolve?name= for related-term links:
// exact display-name match over the full term set, 404 when undefined.
func (h *TermHandler) ResolveTerm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ResolveTerm"))

	name := r.URL.Query().Get("name")
	if name == "" {
		appErr := model.NewAppError("VALIDATION_ERROR", "Query parameter 'name' is required.", "name", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	term, err := h.queries.ResolveRelated(r.Context(), name)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, term, logger)
}

// CreateTerm serves POST /api/terms (admin).
func (h *TermHandler) CreateTerm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateTerm"))

	var req model.CreateTermRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for a term.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	term, err := h.terms.CreateTerm(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating term", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Term created", slog.Int("term_id", term.ID), slog.String("term", term.Term))
	webutil.RespondWithJSON(w, http.StatusCreated, term, logger)
}

// UpdateTerm serves PUT /api/terms/{id} (admin). The body is a partial
// update: omitted fields are preserved, supplied list fields replace the
// stored lists whole.
func (h *TermHandler) UpdateTerm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "UpdateTerm"))

	id, err := termIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpdateTermRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for a term update.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	term, err := h.terms.UpdateTerm(r.Context(), id, &req)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrInvalidInput) {
			logger.Error("Error updating term", slog.Any("error", err), slog.Int("term_id", id))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Term updated", slog.Int("term_id", id))
	webutil.RespondWithJSON(w, http.StatusOK, term, logger)
}

// DeleteTerm serves DELETE /api/terms/{id} (admin).
func (h *TermHandler) DeleteTerm(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteTerm"))

	id, err := termIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.terms.DeleteTerm(r.Context(), id); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error deleting term", slog.Any("error", err), slog.Int("term_id", id))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Term deleted", slog.Int("term_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func termIDParam(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, model.NewAppError("INVALID_URL_PARAM", "Term id must be a positive integer.", "id", model.ErrInvalidInput)
	}
	return id, nil
}
