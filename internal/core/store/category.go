package store

import (
	"slices"

	"github.com/healthlog/health-backend/internal/core/domain"
)

// categoryBook holds one user's categories in creation order.
type categoryBook struct {
	names []string
	items map[string][]domain.CategoryItem
}

func newCategoryBook() *categoryBook {
	return &categoryBook{items: make(map[string][]domain.CategoryItem)}
}

func importBook(cats domain.Categories) *categoryBook {
	b := newCategoryBook()
	for _, c := range cats {
		if _, dup := b.items[c.Name]; dup {
			continue
		}
		b.names = append(b.names, c.Name)
		b.items[c.Name] = slices.Clone(c.Items)
	}
	return b
}

func (b *categoryBook) has(name string) bool {
	_, ok := b.items[name]
	return ok
}

func (b *categoryBook) export() domain.Categories {
	out := make(domain.Categories, 0, len(b.names))
	for _, n := range b.names {
		out = append(out, domain.Category{Name: n, Items: slices.Clone(b.items[n])})
	}
	return out
}

// book returns the user's categories, or an empty book that is not attached
// to the store.
func (s *Store) book(user string) *categoryBook {
	if b, ok := s.categories[user]; ok {
		return b
	}
	return newCategoryBook()
}

// CreateCategory adds an empty category. Items can only be added to
// categories created this way.
func (s *Store) CreateCategory(user, name string) error {
	return s.write(user, func() error {
		b, ok := s.categories[user]
		if !ok {
			b = newCategoryBook()
			s.categories[user] = b
		}
		if b.has(name) {
			return domain.ErrCategoryExists
		}
		b.names = append(b.names, name)
		b.items[name] = nil
		return nil
	})
}

// DeleteCategory removes the category with all of its items.
func (s *Store) DeleteCategory(user, name string) error {
	return s.write(user, func() error {
		b := s.book(user)
		if !b.has(name) {
			return domain.ErrCategoryNotFound
		}
		delete(b.items, name)
		b.names = slices.DeleteFunc(b.names, func(n string) bool { return n == name })
		return nil
	})
}

// Categories lists the user's category names in creation order.
func (s *Store) Categories(user string) ([]string, error) {
	var out []string
	err := s.read(user, func() error {
		out = slices.Clone(s.book(user).names)
		if out == nil {
			out = []string{}
		}
		return nil
	})
	return out, err
}

// AddCategoryItem appends item to an existing category.
func (s *Store) AddCategoryItem(user, category string, item domain.CategoryItem) error {
	return s.write(user, func() error {
		b := s.book(user)
		if !b.has(category) {
			return domain.ErrCategoryNotFound
		}
		b.items[category] = append(b.items[category], item)
		return nil
	})
}

// UpdateCategoryItem replaces the item at index in place.
func (s *Store) UpdateCategoryItem(user, category string, index int, item domain.CategoryItem) error {
	return s.write(user, func() error {
		b := s.book(user)
		if !b.has(category) {
			return domain.ErrCategoryNotFound
		}
		items := b.items[category]
		if index < 0 || index >= len(items) {
			return domain.ErrIndexOutOfRange
		}
		items[index] = item
		return nil
	})
}

// DeleteCategoryItem removes the item at index; later items shift down by
// one.
func (s *Store) DeleteCategoryItem(user, category string, index int) error {
	return s.write(user, func() error {
		b := s.book(user)
		if !b.has(category) {
			return domain.ErrCategoryNotFound
		}
		items := b.items[category]
		if index < 0 || index >= len(items) {
			return domain.ErrIndexOutOfRange
		}
		b.items[category] = slices.Delete(items, index, index+1)
		return nil
	})
}

// CategoryItems returns a copy of the category's items in insertion order.
func (s *Store) CategoryItems(user, category string) ([]domain.CategoryItem, error) {
	var out []domain.CategoryItem
	err := s.read(user, func() error {
		b := s.book(user)
		if !b.has(category) {
			return domain.ErrCategoryNotFound
		}
		out = make([]domain.CategoryItem, len(b.items[category]))
		copy(out, b.items[category])
		return nil
	})
	return out, err
}
