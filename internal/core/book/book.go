package book

// Author is the writer a book is attributed to.
type Author struct {
	Name string `json:"name"`
}

// Book is one row of the catalog listing: a title joined with its author.
type Book struct {
	Title  string `json:"title"`
	Author Author `json:"author"`
}

// Filter narrows the catalog listing. Zero values mean "not given".
type Filter struct {
	AuthorIDs []int
	Search    string
	Limit     *int
}

// HasLimit reports whether a row cap applies. A limit of zero is treated
// exactly like an absent limit and returns every matching row.
func (f Filter) HasLimit() bool {
	return f.Limit != nil && *f.Limit != 0
}

// GraphQL argument names
const (
	ArgAuthorIDs = "authorIds"
	ArgSearch    = "search"
	ArgLimit     = "limit"
)
