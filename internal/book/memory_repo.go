package book

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Store. Ids come from a counter and are never
// reused, matching a database sequence.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	lastID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[int64]Book)}
}

func (r *MemoryRepo) Scan(ctx context.Context, s Scan) ([]Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []Book{}
	for _, id := range ids {
		if s.Limit > 0 && len(out) >= s.Limit {
			break
		}
		b := r.books[id]
		if s.Where.Matches(b) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return clone(b), nil
}

func (r *MemoryRepo) Insert(ctx context.Context, in Input) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	b := fromInput(r.lastID, in)
	r.books[b.ID] = b
	return clone(b), nil
}

func (r *MemoryRepo) UpdateByID(ctx context.Context, id int64, in Input) (Book, error) {
	if err := ctx.Err(); err != nil {
		return Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return Book{}, ErrNotFound
	}
	b := fromInput(id, in)
	r.books[id] = b
	return clone(b), nil
}

func (r *MemoryRepo) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func fromInput(id int64, in Input) Book {
	return clone(Book{ID: id, Title: in.Title, Author: in.Author, Year: in.Year})
}

// clone copies the year pointer so callers never share state with the map.
func clone(b Book) Book {
	if b.Year != nil {
		y := *b.Year
		b.Year = &y
	}
	return b
}
