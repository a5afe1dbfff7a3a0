package book

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/taibuivan/bookshelf/internal/platform/database/schema"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// predicate is one "<clause> ?" fragment and the value bound to its placeholder.
type predicate struct {
	clause string
	arg    any
}

// predicates returns the active filters in a fixed order: author ids first,
// then the title search.
func (f Filter) predicates() []predicate {
	var predicates []predicate

	if len(f.AuthorIDs) > 0 {
		predicates = append(predicates, predicate{
			clause: schema.Books.Col(schema.Books.AuthorID) + " = ANY(?)",
			arg:    f.AuthorIDs,
		})
	}

	if f.Search != "" {
		predicates = append(predicates, predicate{
			clause: schema.Books.Col(schema.Books.Title) + " LIKE ?",
			arg:    containsPattern(f.Search),
		})
	}

	return predicates
}

// containsPattern wraps the search term for a substring LIKE match. Wildcards
// inside the term are passed through untouched.
func containsPattern(search string) string {
	return "%" + search + "%"
}

/*
BuildListQuery renders the listing statement for filter.

Predicates are joined with AND and the LIMIT is bound last, so placeholders
are numbered in that order. Rows come back in whatever order the store
produces; no ORDER BY is added.
*/
func BuildListQuery(filter Filter) (string, []any, error) {
	builder := psql.
		Select(schema.Books.Col(schema.Books.Title), schema.Authors.Col(schema.Authors.Name)).
		From(schema.Books.Table).
		Join(fmt.Sprintf("%s ON %s = %s",
			schema.Authors.Table,
			schema.Books.Col(schema.Books.AuthorID),
			schema.Authors.Col(schema.Authors.ID),
		))

	for _, p := range filter.predicates() {
		builder = builder.Where(p.clause, p.arg)
	}

	if filter.HasLimit() {
		builder = builder.Suffix("LIMIT ?", *filter.Limit)
	}

	return builder.ToSql()
}
