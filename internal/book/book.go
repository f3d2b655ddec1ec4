package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrConstraint is returned when the store rejects a write.
	ErrConstraint = errors.New("book constraint violation")
	// ErrEmptyFilter is returned by Search when no filter field is set.
	ErrEmptyFilter = errors.New("at least one search parameter is required")
)

// Book represents a book entity.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   *int   `json:"year"`
}

// Input holds the writable fields of a book.
type Input struct {
	Title  string
	Author string
	Year   *int
}

// Filter defines the optional search fields. A nil, empty or whitespace-only
// text field is ignored.
type Filter struct {
	Title  *string
	Author *string
	Year   *int
}

// IsEmpty reports whether no filter field would produce a predicate.
func (f Filter) IsEmpty() bool {
	return blank(f.Title) && blank(f.Author) && f.Year == nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
