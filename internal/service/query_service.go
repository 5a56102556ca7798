package service

import (
	"context"
	"sort"
	"strings"

	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/repository"
)

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "all"

// unorderedPathRank is the fallback position for a term whose path entry
// is missing or zero. Values >= 1000 all sort into the alphabetical
// appendix band, so this just has to be past that boundary.
const unorderedPathRank = 9999

// TermFilter is one list request: at most one of Category/LearningPath is
// honored (a learning-path selection clears the category, mirroring the
// UI), combined with an optional free-text search.
type TermFilter struct {
	Category     string
	Search       string
	LearningPath string
}

// QueryService is the read side: filtering, canonical ordering, prev/next
// navigation and related-name resolution. All operations are pure reads
// over the store and never produce domain errors: no match means an empty
// list or nil neighbors.
type QueryService interface {
	ListTerms(ctx context.Context, filter TermFilter) ([]*model.Term, error)
	// Neighbors recomputes the ordered sequence for filter and returns the
	// terms adjacent to the focused id. Both are nil when the id is not in
	// the sequence (e.g. reached through a related link outside the
	// active filter).
	Neighbors(ctx context.Context, filter TermFilter, termID int) (prev, next *model.Term, err error)
	// ResolveRelated finds a term by exact display-name match over the
	// full term set, for navigating "related" references.
	ResolveRelated(ctx context.Context, name string) (*model.Term, error)
	ListLearningPaths(ctx context.Context) []*model.LearningPath
}

type queryService struct {
	store repository.Store
	paths []*model.LearningPath
}

func NewQueryService(store repository.Store, paths []*model.LearningPath) QueryService {
	return &queryService{store: store, paths: paths}
}

func (s *queryService) ListTerms(ctx context.Context, filter TermFilter) ([]*model.Term, error) {
	terms, err := s.store.GetTerms(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error reading terms", "error", err)
		return nil, model.ErrInternalServer
	}

	if filter.LearningPath != "" {
		// Learning path and category are mutually exclusive; the path wins.
		filter.Category = ""
	}

	filtered := terms[:0:0]
	for _, term := range terms {
		if !matchesFilter(term, filter) {
			continue
		}
		filtered = append(filtered, term)
	}

	sortTerms(filtered, filter.LearningPath)
	return filtered, nil
}

func (s *queryService) Neighbors(ctx context.Context, filter TermFilter, termID int) (*model.Term, *model.Term, error) {
	sequence, err := s.ListTerms(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	index := -1
	for i, term := range sequence {
		if term.ID == termID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, nil, nil
	}

	var prev, next *model.Term
	if index > 0 {
		prev = sequence[index-1]
	}
	if index < len(sequence)-1 {
		next = sequence[index+1]
	}
	return prev, next, nil
}

func (s *queryService) ResolveRelated(ctx context.Context, name string) (*model.Term, error) {
	terms, err := s.store.GetTerms(ctx)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error reading terms", "error", err)
		return nil, model.ErrInternalServer
	}
	for _, term := range terms {
		if term.Term == name {
			return term, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *queryService) ListLearningPaths(ctx context.Context) []*model.LearningPath {
	return s.paths
}

func matchesFilter(term *model.Term, filter TermFilter) bool {
	if filter.LearningPath != "" {
		if _, ok := term.LearningPaths[filter.LearningPath]; !ok {
			return false
		}
	}
	if filter.Category != "" && filter.Category != CategoryAll && term.Category != filter.Category {
		return false
	}
	if filter.Search != "" && !matchesSearch(term, filter.Search) {
		return false
	}
	return true
}

// matchesSearch reports whether query appears, case-insensitively, in the
// term name, definition, any alias or any tag. The category field is
// deliberately not searched.
func matchesSearch(term *model.Term, query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(term.Term), query) {
		return true
	}
	if strings.Contains(strings.ToLower(term.Definition), query) {
		return true
	}
	for _, alias := range term.Aliases {
		if strings.Contains(strings.ToLower(alias), query) {
			return true
		}
	}
	for _, tag := range term.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// sortTerms orders terms into the canonical list order: ascending by
// learning-path position (alphabetical among ties, which covers the whole
// >= 1000 unordered band) when a path is active, plain case-insensitive
// alphabetical otherwise. The sort is stable so equal names keep their
// store order.
func sortTerms(terms []*model.Term, pathID string) {
	if pathID != "" {
		sort.SliceStable(terms, func(i, j int) bool {
			a, b := pathRank(terms[i], pathID), pathRank(terms[j], pathID)
			if a != b {
				return a < b
			}
			return lessAlphabetical(terms[i], terms[j])
		})
		return
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return lessAlphabetical(terms[i], terms[j])
	})
}

func pathRank(term *model.Term, pathID string) int {
	order, ok := term.LearningPaths[pathID]
	if !ok || order == 0 {
		return unorderedPathRank
	}
	// Everything in the appendix band sorts alphabetically, not by the
	// arbitrary sentinel value the data file happens to carry.
	if order >= 1000 {
		return unorderedPathRank
	}
	return order
}

func lessAlphabetical(a, b *model.Term) bool {
	return strings.ToLower(a.Term) < strings.ToLower(b.Term)
}
