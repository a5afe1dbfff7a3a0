package book_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookshelf/internal/core/book"
	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
)

type queryObservation struct {
	rows int
	err  error
}

type fakeObserver struct {
	mu           sync.Mutex
	observations []queryObservation
}

func (o *fakeObserver) ObserveQuery(_ time.Duration, rows int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observations = append(o.observations, queryObservation{rows: rows, err: err})
}

func debugContext(buffer *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxutil.WithLogger(context.Background(), logger)
}

func TestService_ListBooks(t *testing.T) {
	var buffer bytes.Buffer
	observer := &fakeObserver{}
	service := book.NewService(newMemoryRepository(), observer)

	books, err := service.ListBooks(debugContext(&buffer), book.Filter{AuthorIDs: []int{2}})
	require.NoError(t, err)

	assert.Equal(t, []book.Book{{Title: "Hobbit", Author: book.Author{Name: "Tolkien"}}}, books)
	assert.Equal(t, []queryObservation{{rows: 1}}, observer.observations)
	assert.Contains(t, buffer.String(), `"msg":"books_listed"`)
	assert.Contains(t, buffer.String(), `"rows":1`)
}

/*
TestService_ListBooks_Failure checks that store errors are returned unchanged,
logged with their cause, and reported to the observer.
*/
func TestService_ListBooks_Failure(t *testing.T) {
	var buffer bytes.Buffer
	observer := &fakeObserver{}
	repo := newMemoryRepository()
	storeErr := apperr.Internal(errors.New("connection refused"))
	repo.err = storeErr

	service := book.NewService(repo, observer)

	books, err := service.ListBooks(debugContext(&buffer), book.Filter{})

	assert.Nil(t, books)
	assert.Same(t, storeErr, err)
	assert.Len(t, repo.calls, 1, "errors must not be retried")
	require.Len(t, observer.observations, 1)
	assert.Equal(t, storeErr, observer.observations[0].err)
	assert.Contains(t, buffer.String(), `"msg":"books_list_failed"`)
	assert.Contains(t, buffer.String(), "connection refused")
}

type nilRepository struct{}

func (nilRepository) ListBooks(context.Context, book.Filter) ([]book.Book, error) {
	return nil, nil
}

func TestService_ListBooks_EmptyIsNotNil(t *testing.T) {
	service := book.NewService(nilRepository{}, nil)

	books, err := service.ListBooks(context.Background(), book.Filter{})
	require.NoError(t, err)

	assert.NotNil(t, books)
	assert.Empty(t, books)
}
