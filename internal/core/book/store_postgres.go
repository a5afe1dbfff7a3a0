package book

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookshelf/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListBooks runs a single statement per call. Books whose author row is
// missing are dropped by the inner join.
func (repository *PostgresRepository) ListBooks(ctx context.Context, filter Filter) ([]Book, error) {
	query, args, err := BuildListQuery(filter)
	if err != nil {
		return nil, dberr.Wrap(err, "build_list_books")
	}

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_book")
	}

	if books == nil {
		books = []Book{}
	}
	return books, nil
}

func scanBook(row pgx.CollectableRow) (Book, error) {
	var b Book
	err := row.Scan(&b.Title, &b.Author.Name)
	return b, err
}
