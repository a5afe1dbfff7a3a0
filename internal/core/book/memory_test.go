package book_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/bookshelf/internal/core/book"
)

type bookRow struct {
	title    string
	authorID int
}

// memoryRepository applies the listing semantics to in-memory rows, in
// insertion order, so resolver and transport tests run without Postgres.
type memoryRepository struct {
	mu      sync.Mutex
	authors map[int]string
	rows    []bookRow
	err     error
	calls   []book.Filter
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		authors: map[int]string{1: "Herbert", 2: "Tolkien"},
		rows: []bookRow{
			{title: "Dune", authorID: 1},
			{title: "Hobbit", authorID: 2},
			{title: "Orphan", authorID: 42},
		},
	}
}

func (r *memoryRepository) ListBooks(_ context.Context, filter book.Filter) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, filter)
	if r.err != nil {
		return nil, r.err
	}
	if filter.HasLimit() && *filter.Limit < 0 {
		return nil, errors.New("LIMIT must not be negative")
	}

	books := []book.Book{}
	for _, row := range r.rows {
		name, ok := r.authors[row.authorID]
		if !ok {
			continue
		}
		if len(filter.AuthorIDs) > 0 && !slices.Contains(filter.AuthorIDs, row.authorID) {
			continue
		}
		if filter.Search != "" && !strings.Contains(row.title, filter.Search) {
			continue
		}
		if filter.HasLimit() && len(books) == *filter.Limit {
			break
		}
		books = append(books, book.Book{Title: row.title, Author: book.Author{Name: name}})
	}

	return books, nil
}

func (r *memoryRepository) lastFilter() book.Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}
