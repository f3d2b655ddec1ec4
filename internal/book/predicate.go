package book

import "strings"

// Field names a stored book column.
type Field string

const (
	FieldID     Field = "id"
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

// Operator is the comparison applied by a leaf predicate.
type Operator int

const (
	OpContains Operator = iota + 1
	OpEquals
	OpGreaterThan
)

// Combinator joins the terms of a group predicate.
type Combinator int

const (
	CombineAnd Combinator = iota + 1
	CombineOr
)

// Predicate is a boolean condition over book fields. It is either a leaf
// (Field, Operator, Value) or a group (Combinator, Terms). The zero value
// matches every book.
type Predicate struct {
	Combinator Combinator
	Terms      []Predicate

	Field    Field
	Operator Operator
	Value    any
}

// Contains matches books whose text field contains v.
func Contains(f Field, v string) Predicate {
	return Predicate{Field: f, Operator: OpContains, Value: v}
}

// Equals matches books whose field equals v.
func Equals(f Field, v any) Predicate {
	return Predicate{Field: f, Operator: OpEquals, Value: v}
}

// GreaterThan matches books whose field is strictly greater than v.
func GreaterThan(f Field, v any) Predicate {
	return Predicate{Field: f, Operator: OpGreaterThan, Value: v}
}

// AllOf joins terms with AND. Match-all terms are dropped.
func AllOf(terms ...Predicate) Predicate {
	return group(CombineAnd, terms)
}

// AnyOf joins terms with OR. Match-all terms are dropped.
func AnyOf(terms ...Predicate) Predicate {
	return group(CombineOr, terms)
}

func group(c Combinator, terms []Predicate) Predicate {
	kept := make([]Predicate, 0, len(terms))
	for _, t := range terms {
		if t.MatchesAll() {
			continue
		}
		kept = append(kept, t)
	}
	switch len(kept) {
	case 0:
		return Predicate{}
	case 1:
		return kept[0]
	}
	return Predicate{Combinator: c, Terms: kept}
}

// IsLeaf reports whether p is a single comparison.
func (p Predicate) IsLeaf() bool {
	return p.Operator != 0
}

// MatchesAll reports whether p places no condition at all.
func (p Predicate) MatchesAll() bool {
	return !p.IsLeaf() && len(p.Terms) == 0
}

// Matches evaluates p against b. Text comparison is case-sensitive.
func (p Predicate) Matches(b Book) bool {
	if p.IsLeaf() {
		return p.matchLeaf(b)
	}
	if len(p.Terms) == 0 {
		return true
	}
	if p.Combinator == CombineOr {
		for _, t := range p.Terms {
			if t.Matches(b) {
				return true
			}
		}
		return false
	}
	for _, t := range p.Terms {
		if !t.Matches(b) {
			return false
		}
	}
	return true
}

func (p Predicate) matchLeaf(b Book) bool {
	switch p.Field {
	case FieldTitle, FieldAuthor:
		v, ok := p.Value.(string)
		if !ok {
			return false
		}
		field := b.Title
		if p.Field == FieldAuthor {
			field = b.Author
		}
		switch p.Operator {
		case OpContains:
			return strings.Contains(field, v)
		case OpEquals:
			return field == v
		case OpGreaterThan:
			return field > v
		}
	case FieldID:
		return compareInt(b.ID, p.Operator, p.Value)
	case FieldYear:
		if b.Year == nil {
			return false
		}
		return compareInt(int64(*b.Year), p.Operator, p.Value)
	}
	return false
}

func compareInt(got int64, op Operator, value any) bool {
	want, ok := toInt64(value)
	if !ok {
		return false
	}
	switch op {
	case OpEquals:
		return got == want
	case OpGreaterThan:
		return got > want
	}
	return false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}
