package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table    string
	ID       string
	Title    string
	AuthorID string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:    "books",
	ID:       "id",
	Title:    "title",
	AuthorID: "author_id",
}

// Col returns column qualified with the table name.
func (t BooksTable) Col(column string) string {
	return t.Table + "." + column
}
