package book

import (
	"context"
)

// Service provides book catalog business logic. It is the only component
// that talks to the Store.
type Service struct {
	store Store
}

// NewService creates a new book service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns one page of books ordered by id.
func (s *Service) List(ctx context.Context, p Page) ([]Book, error) {
	return s.store.Scan(ctx, Bound(Predicate{}, p))
}

// Search returns one page of books matching f, ordered by id.
func (s *Service) Search(ctx context.Context, f Filter, p Page) ([]Book, error) {
	if f.IsEmpty() {
		return nil, ErrEmptyFilter
	}
	return s.store.Scan(ctx, Bound(BuildPredicate(f), p))
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	return s.store.GetByID(ctx, id)
}

// Create stores a new book and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	return s.store.Insert(ctx, in)
}

// Update overwrites title, author and year of an existing book.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if id <= 0 {
		return Book{}, ErrNotFound
	}
	b, err := s.store.UpdateByID(ctx, id, in)
	if err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes an existing book.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.store.DeleteByID(ctx, id)
}
