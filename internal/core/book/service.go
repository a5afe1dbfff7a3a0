package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/ctxutil"
)

// QueryObserver receives the outcome of every listing query.
type QueryObserver interface {
	ObserveQuery(elapsed time.Duration, rows int, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveQuery(time.Duration, int, error) {}

type Service struct {
	repo     Repository
	observer QueryObserver
}

// NewService wires the listing use case. A nil observer disables query metrics.
func NewService(repo Repository, observer QueryObserver) *Service {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Service{
		repo:     repo,
		observer: observer,
	}
}

// ListBooks returns the books matching filter. Repository errors are returned
// unchanged and never retried.
func (service *Service) ListBooks(ctx context.Context, filter Filter) ([]Book, error) {
	logger := ctxutil.GetLogger(ctx)
	startTime := time.Now()

	books, err := service.repo.ListBooks(ctx, filter)
	service.observer.ObserveQuery(time.Since(startTime), len(books), err)

	if err != nil {
		cause := err
		if appError := apperr.As(err); appError != nil && appError.Cause != nil {
			cause = appError.Cause
		}

		logger.ErrorContext(ctx, "books_list_failed",
			slog.Any("error", cause),
			slog.Int("author_ids", len(filter.AuthorIDs)),
			slog.Bool("search", filter.Search != ""),
		)
		return nil, err
	}

	if books == nil {
		books = []Book{}
	}

	logger.DebugContext(ctx, "books_listed",
		slog.Int("author_ids", len(filter.AuthorIDs)),
		slog.Bool("search", filter.Search != ""),
		slog.Bool("limited", filter.HasLimit()),
		slog.Int("rows", len(books)),
	)
	return books, nil
}
