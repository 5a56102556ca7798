package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"glosskeep/internal/model"
)

// GormStore is the database-backed Store. Unlike the JSON files, ids here
// are stable across restarts (autoincrement primary keys are never
// reused).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateTerm(ctx context.Context, term *model.Term) (*model.Term, error) {
	stored := term.Clone()
	stored.ID = 0
	stored.Normalize()
	if err := s.db.WithContext(ctx).Create(stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *GormStore) GetTerm(ctx context.Context, id int) (*model.Term, error) {
	var term model.Term
	err := s.db.WithContext(ctx).First(&term, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	term.Normalize()
	return &term, nil
}

func (s *GormStore) GetTerms(ctx context.Context) ([]*model.Term, error) {
	var terms []*model.Term
	if err := s.db.WithContext(ctx).Order("id").Find(&terms).Error; err != nil {
		return nil, err
	}
	for _, term := range terms {
		term.Normalize()
	}
	return terms, nil
}

func (s *GormStore) GetTermsByCategory(ctx context.Context, category string) ([]*model.Term, error) {
	terms := []*model.Term{}
	if err := s.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&terms).Error; err != nil {
		return nil, err
	}
	for _, term := range terms {
		term.Normalize()
	}
	return terms, nil
}

func (s *GormStore) UpdateTerm(ctx context.Context, id int, req *model.UpdateTermRequest) (*model.Term, error) {
	var updated *model.Term
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var term model.Term
		if err := tx.First(&term, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}
		applyTermUpdate(&term, req)
		if err := tx.Save(&term).Error; err != nil {
			return err
		}
		updated = &term
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *GormStore) DeleteTerm(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&model.Term{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) GetCategories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *GormStore) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	stored := *category
	stored.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Category{}).Where("name = ?", stored.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrConflict
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *GormStore) UpdateCategory(ctx context.Context, id int, req *model.UpdateCategoryRequest) (*model.Category, error) {
	var updated *model.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}
		if req.Name != nil && *req.Name != category.Name {
			var count int64
			if err := tx.Model(&model.Category{}).Where("name = ? AND id != ?", *req.Name, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return model.ErrConflict
			}
			category.Name = *req.Name
		}
		if req.Description != nil {
			category.Description = *req.Description
		}
		if err := tx.Save(&category).Error; err != nil {
			return err
		}
		updated = &category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *GormStore) GetUser(ctx context.Context, id int) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	stored := *user
	stored.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", stored.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return model.ErrConflict
		}
		return tx.Create(&stored).Error
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
