package book

import "strings"

// BuildPredicate turns a search filter into a store predicate.
//
// A text value v matches a field that contains v, or that contains any of
// the space separated tokens of v. Blank tokens are skipped: an empty
// substring would match every row. Title, author and year conditions are
// ANDed. Absent, empty or whitespace-only fields add nothing.
func BuildPredicate(f Filter) Predicate {
	var terms []Predicate
	if f.Title != nil {
		terms = append(terms, textMatch(FieldTitle, *f.Title))
	}
	if f.Author != nil {
		terms = append(terms, textMatch(FieldAuthor, *f.Author))
	}
	if f.Year != nil {
		terms = append(terms, Equals(FieldYear, *f.Year))
	}
	return AllOf(terms...)
}

func textMatch(field Field, v string) Predicate {
	if strings.TrimSpace(v) == "" {
		return Predicate{}
	}

	alternatives := []Predicate{Contains(field, v)}
	seen := map[string]bool{v: true}
	for _, token := range strings.Split(v, " ") {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		alternatives = append(alternatives, Contains(field, token))
	}
	return AnyOf(alternatives...)
}
