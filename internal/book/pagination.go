package book

// DefaultLimit is the page size used when the caller does not set one.
const DefaultLimit = 12

// Page is a forward-only, id based page request. Cursor is the id of the
// last book the caller has seen; nil starts from the beginning.
type Page struct {
	Cursor *int64
	Limit  int
}

// Scan is a bounded read against a Store. Results are always ordered by
// ascending id and capped at Limit.
type Scan struct {
	Where Predicate
	Limit int
}

// Bound restricts where to the page described by p.
//
// Consecutive pages do not overlap and leave no gaps as long as no book
// with an id below the cursor is inserted or deleted between calls.
func Bound(where Predicate, p Page) Scan {
	if p.Cursor != nil {
		where = AllOf(where, GreaterThan(FieldID, *p.Cursor))
	}
	return Scan{Where: where, Limit: p.limit()}
}

func (p Page) limit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}
	return p.Limit
}

// Next returns the cursor for the page after items, or nil when items is
// shorter than the page size and nothing can follow.
func (p Page) Next(items []Book) *int64 {
	if len(items) == 0 || len(items) < p.limit() {
		return nil
	}
	last := items[len(items)-1].ID
	return &last
}
