package service

import (
	"context"
	"errors"
	"fmt"

	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/repository"
)

// TermService owns the write path for terms: validation, the category
// referential check, and NotFound mapping. Reads that need filtering or
// ordering go through QueryService instead.
type TermService interface {
	CreateTerm(ctx context.Context, req *model.CreateTermRequest) (*model.Term, error)
	GetTerm(ctx context.Context, id int) (*model.Term, error)
	UpdateTerm(ctx context.Context, id int, req *model.UpdateTermRequest) (*model.Term, error)
	DeleteTerm(ctx context.Context, id int) error
}

type termService struct {
	store repository.Store
}

func NewTermService(store repository.Store) TermService {
	return &termService{store: store}
}

func (s *termService) CreateTerm(ctx context.Context, req *model.CreateTermRequest) (*model.Term, error) {
	if err := s.checkCategoryExists(ctx, req.Category); err != nil {
		return nil, err
	}

	term := &model.Term{
		Term:          req.Term,
		Category:      req.Category,
		Definition:    req.Definition,
		Aliases:       req.Aliases,
		Related:       req.Related,
		Tags:          req.Tags,
		References:    req.References,
		LearningPaths: req.LearningPaths,
	}

	created, err := s.store.CreateTerm(ctx, term)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error creating term", "error", err, "term", req.Term)
		return nil, model.ErrInternalServer
	}
	return created, nil
}

func (s *termService) GetTerm(ctx context.Context, id int) (*model.Term, error) {
	return s.store.GetTerm(ctx, id)
}

func (s *termService) UpdateTerm(ctx context.Context, id int, req *model.UpdateTermRequest) (*model.Term, error) {
	if req.Empty() {
		return nil, model.NewAppError("VALIDATION_ERROR", "No fields supplied for update.", "", model.ErrInvalidInput)
	}
	if req.Category != nil {
		if err := s.checkCategoryExists(ctx, *req.Category); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateTerm(ctx, id, req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error updating term", "error", err, "term_id", id)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}

func (s *termService) DeleteTerm(ctx context.Context, id int) error {
	deleted, err := s.store.DeleteTerm(ctx, id)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error deleting term", "error", err, "term_id", id)
		return model.ErrInternalServer
	}
	if !deleted {
		return model.ErrNotFound
	}
	return nil
}

// checkCategoryExists enforces on write that a term's category names an
// existing category. The stored name is kept exactly as supplied; reads
// never validate, so legacy records with dangling categories still render.
func (s *termService) checkCategoryExists(ctx context.Context, name string) error {
	_, err := s.store.GetCategoryByName(ctx, name)
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError(
			"UNKNOWN_CATEGORY",
			fmt.Sprintf("Category %q does not exist.", name),
			"category",
			model.ErrInvalidInput,
		)
	}
	middleware.GetLogger(ctx).Error("Error checking category existence", "error", err, "category", name)
	return model.ErrInternalServer
}
