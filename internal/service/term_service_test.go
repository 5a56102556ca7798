package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glosskeep/internal/model"
	"glosskeep/internal/repository"
)

func newTermFixture(t *testing.T) (TermService, *repository.MemoryStore) {
	t.Helper()
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore(t.TempDir(), false, testLogger)
	_, err := store.CreateCategory(context.Background(), &model.Category{Name: "Basics", Description: "d"})
	require.NoError(t, err)
	return NewTermService(store), store
}

func Test_termService_CreateTerm(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTermFixture(t)

	t.Run("creates and normalizes missing lists", func(t *testing.T) {
		created, err := svc.CreateTerm(ctx, &model.CreateTermRequest{
			Term:       "Alpha",
			Category:   "Basics",
			Definition: "first letter",
			Aliases:    []string{"a"},
		})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Alpha", created.Term)
		assert.Equal(t, []string{"a"}, created.Aliases)
		// Unsupplied list fields come back as empty slices, not null.
		assert.NotNil(t, created.Related)
		assert.Empty(t, created.Related)
		assert.NotNil(t, created.Tags)
		assert.NotNil(t, created.References)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := svc.CreateTerm(ctx, &model.CreateTermRequest{
			Term:       "Beta",
			Category:   "Nonexistent",
			Definition: "def",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNKNOWN_CATEGORY", appErr.Detail.Code)
		assert.Equal(t, "category", appErr.Detail.Field)
	})
}

func Test_termService_UpdateTerm(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTermFixture(t)

	created, err := svc.CreateTerm(ctx, &model.CreateTermRequest{
		Term:       "Gamma",
		Category:   "Basics",
		Definition: "original definition",
		Tags:       []string{"one", "two"},
	})
	require.NoError(t, err)

	t.Run("partial update leaves other fields untouched", func(t *testing.T) {
		newDef := "updated definition"
		updated, err := svc.UpdateTerm(ctx, created.ID, &model.UpdateTermRequest{
			Definition: &newDef,
		})
		require.NoError(t, err)
		assert.Equal(t, "updated definition", updated.Definition)
		assert.Equal(t, "Gamma", updated.Term)
		assert.Equal(t, []string{"one", "two"}, updated.Tags)
	})

	t.Run("list update replaces wholesale", func(t *testing.T) {
		newTags := []string{"three"}
		updated, err := svc.UpdateTerm(ctx, created.ID, &model.UpdateTermRequest{
			Tags: &newTags,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"three"}, updated.Tags)
	})

	t.Run("empty request is a validation error", func(t *testing.T) {
		_, err := svc.UpdateTerm(ctx, created.ID, &model.UpdateTermRequest{})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("unknown category on update is rejected", func(t *testing.T) {
		badCategory := "Nonexistent"
		_, err := svc.UpdateTerm(ctx, created.ID, &model.UpdateTermRequest{
			Category: &badCategory,
		})
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("missing id maps to NotFound", func(t *testing.T) {
		newDef := "x"
		_, err := svc.UpdateTerm(ctx, 99999, &model.UpdateTermRequest{Definition: &newDef})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_termService_DeleteTerm(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTermFixture(t)

	created, err := svc.CreateTerm(ctx, &model.CreateTermRequest{
		Term:       "Delta",
		Category:   "Basics",
		Definition: "def",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTerm(ctx, created.ID))

	_, err = svc.GetTerm(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Deleting again reports NotFound.
	assert.ErrorIs(t, svc.DeleteTerm(ctx, created.ID), model.ErrNotFound)
}
