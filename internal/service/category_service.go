package service

import (
	"context"
	"errors"

	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/repository"
)

// CategoryService owns category reads and the admin add/rename path.
type CategoryService interface {
	GetCategories(ctx context.Context) ([]*model.Category, error)
	CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int, req *model.UpdateCategoryRequest) (*model.Category, error)
}

type categoryService struct {
	store repository.Store
}

func NewCategoryService(store repository.Store) CategoryService {
	return &categoryService{store: store}
}

func (s *categoryService) GetCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing categories", "error", err)
		return nil, model.ErrInternalServer
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	created, err := s.store.CreateCategory(ctx, &model.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("DUPLICATE_CATEGORY", "A category with that name already exists.", "name", model.ErrConflict)
		}
		middleware.GetLogger(ctx).Error("Error creating category", "error", err, "name", req.Name)
		return nil, model.ErrInternalServer
	}
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int, req *model.UpdateCategoryRequest) (*model.Category, error) {
	if req.Name == nil && req.Description == nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "No fields supplied for update.", "", model.ErrInvalidInput)
	}

	updated, err := s.store.UpdateCategory(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNotFound):
			return nil, model.ErrNotFound
		case errors.Is(err, model.ErrConflict):
			return nil, model.NewAppError("DUPLICATE_CATEGORY", "A category with that name already exists.", "name", model.ErrConflict)
		}
		middleware.GetLogger(ctx).Error("Error updating category", "error", err, "category_id", id)
		return nil, model.ErrInternalServer
	}
	return updated, nil
}
