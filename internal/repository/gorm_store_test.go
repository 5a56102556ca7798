package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"glosskeep/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open sqlite for testing")
	require.NoError(t, Migrate(db))
	return db
}

func Test_GormStore_TermCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(setupTestDB(t))

	created, err := store.CreateTerm(ctx, &model.Term{
		Term:       "Alpha",
		Category:   "Basics",
		Definition: "first",
		Aliases:    []string{"a"},
		Tags:       []string{"t"},
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	t.Run("get", func(t *testing.T) {
		got, err := store.GetTerm(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", got.Term)
		assert.Equal(t, []string{"a"}, got.Aliases)
		// Unset list fields round-trip as empty slices.
		assert.NotNil(t, got.Related)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := store.GetTerm(ctx, 9999)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("update merges partial request", func(t *testing.T) {
		newDef := "updated"
		updated, err := store.UpdateTerm(ctx, created.ID, &model.UpdateTermRequest{Definition: &newDef})
		require.NoError(t, err)
		assert.Equal(t, "updated", updated.Definition)
		assert.Equal(t, "Alpha", updated.Term)
		assert.Equal(t, []string{"t"}, updated.Tags)
	})

	t.Run("update missing", func(t *testing.T) {
		newDef := "x"
		_, err := store.UpdateTerm(ctx, 9999, &model.UpdateTermRequest{Definition: &newDef})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("list ordered by id", func(t *testing.T) {
		_, err := store.CreateTerm(ctx, &model.Term{Term: "Beta", Category: "Basics", Definition: "second"})
		require.NoError(t, err)

		terms, err := store.GetTerms(ctx)
		require.NoError(t, err)
		require.Len(t, terms, 2)
		assert.Equal(t, "Alpha", terms[0].Term)
		assert.Equal(t, "Beta", terms[1].Term)
	})

	t.Run("list by category", func(t *testing.T) {
		terms, err := store.GetTermsByCategory(ctx, "Basics")
		require.NoError(t, err)
		assert.Len(t, terms, 2)

		none, err := store.GetTermsByCategory(ctx, "Empty")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := store.DeleteTerm(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.DeleteTerm(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func Test_GormStore_Categories(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(setupTestDB(t))

	created, err := store.CreateCategory(ctx, &model.Category{Name: "Basics", Description: "d"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := store.CreateCategory(ctx, &model.Category{Name: "Basics"})
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("lookup by name", func(t *testing.T) {
		got, err := store.GetCategoryByName(ctx, "Basics")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		_, err = store.GetCategoryByName(ctx, "Nope")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("rename onto taken name conflicts", func(t *testing.T) {
		other, err := store.CreateCategory(ctx, &model.Category{Name: "Other"})
		require.NoError(t, err)

		taken := "Basics"
		_, err = store.UpdateCategory(ctx, other.ID, &model.UpdateCategoryRequest{Name: &taken})
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func Test_GormStore_Users(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore(setupTestDB(t))

	created, err := store.CreateUser(ctx, &model.User{Username: "admin", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	_, err = store.CreateUser(ctx, &model.User{Username: "admin", PasswordHash: "h2"})
	assert.ErrorIs(t, err, model.ErrConflict)

	byName, err := store.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", byID.Username)
}
