package service

import (
	"context"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/validation"
)

func (s *HealthService) CreateCategory(_ context.Context, token, category string) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("create_category", err)
	}
	if !validation.ValidName(category) {
		return s.observe("create_category", invalid("category name is required"))
	}
	return s.observe("create_category", s.store.CreateCategory(name, category))
}

func (s *HealthService) DeleteCategory(_ context.Context, token, category string) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_category", err)
	}
	return s.observe("delete_category", s.store.DeleteCategory(name, category))
}

// ListCategories returns category names in creation order.
func (s *HealthService) ListCategories(_ context.Context, token string) ([]string, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.Categories(name)
}

func validateItem(category string, item domain.CategoryItem) error {
	if !validation.ValidName(category) {
		return invalid("category name is required")
	}
	if !validation.ValidDate(item.Datetime) {
		return invalid("datetime must look like YYYY-MM-DD")
	}
	return nil
}

// AddCategoryItem fails with domain.ErrCategoryNotFound unless the category
// was created first.
func (s *HealthService) AddCategoryItem(_ context.Context, token, category string, item domain.CategoryItem) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("add_category_item", err)
	}
	if err := validateItem(category, item); err != nil {
		return s.observe("add_category_item", err)
	}
	return s.observe("add_category_item", s.store.AddCategoryItem(name, category, item))
}

func (s *HealthService) UpdateCategoryItem(_ context.Context, token, category string, index int, item domain.CategoryItem) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("update_category_item", err)
	}
	if err := validateItem(category, item); err != nil {
		return s.observe("update_category_item", err)
	}
	return s.observe("update_category_item", s.store.UpdateCategoryItem(name, category, index, item))
}

func (s *HealthService) DeleteCategoryItem(_ context.Context, token, category string, index int) error {
	name, err := s.resolve(token)
	if err != nil {
		return s.observe("delete_category_item", err)
	}
	return s.observe("delete_category_item", s.store.DeleteCategoryItem(name, category, index))
}

func (s *HealthService) ListCategoryItems(_ context.Context, token, category string) ([]domain.CategoryItem, error) {
	name, err := s.resolve(token)
	if err != nil {
		return nil, err
	}
	return s.store.CategoryItems(name, category)
}
