package repository

import (
	"context"

	"glosskeep/internal/model"
)

// Store owns the canonical Term, Category and User collections. Reads
// return copies; callers never see a record another goroutine can mutate.
// Two implementations exist: the JSON-file-backed MemoryStore and the
// gorm-backed store.
type Store interface {
	CreateTerm(ctx context.Context, term *model.Term) (*model.Term, error)
	GetTerm(ctx context.Context, id int) (*model.Term, error)
	GetTerms(ctx context.Context) ([]*model.Term, error)
	GetTermsByCategory(ctx context.Context, category string) ([]*model.Term, error)
	// UpdateTerm merges the non-nil fields of req over the stored record.
	// The merge is shallow: a supplied list replaces the old list whole.
	UpdateTerm(ctx context.Context, id int, req *model.UpdateTermRequest) (*model.Term, error)
	// DeleteTerm reports whether a record existed and was removed.
	DeleteTerm(ctx context.Context, id int) (bool, error)

	GetCategories(ctx context.Context) ([]*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int, req *model.UpdateCategoryRequest) (*model.Category, error)

	GetUser(ctx context.Context, id int) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
}

// applyTermUpdate merges req into term in place. Shared by both store
// implementations so the partial-update semantics cannot drift.
func applyTermUpdate(term *model.Term, req *model.UpdateTermRequest) {
	if req.Term != nil {
		term.Term = *req.Term
	}
	if req.Category != nil {
		term.Category = *req.Category
	}
	if req.Definition != nil {
		term.Definition = *req.Definition
	}
	if req.Aliases != nil {
		term.Aliases = append([]string(nil), (*req.Aliases)...)
	}
	if req.Related != nil {
		term.Related = append([]string(nil), (*req.Related)...)
	}
	if req.Tags != nil {
		term.Tags = append([]string(nil), (*req.Tags)...)
	}
	if req.References != nil {
		term.References = append([]string(nil), (*req.References)...)
	}
	if req.LearningPaths != nil {
		paths := make(map[string]int, len(*req.LearningPaths))
		for k, v := range *req.LearningPaths {
			paths[k] = v
		}
		term.LearningPaths = paths
	}
	term.Normalize()
}
