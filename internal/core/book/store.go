package book

import "context"

type Repository interface {
	ListBooks(ctx context.Context, filter Filter) ([]Book, error)
}
