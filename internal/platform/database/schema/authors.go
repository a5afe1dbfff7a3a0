package schema

// AuthorsTable represents the 'authors' table
type AuthorsTable struct {
	Table string
	ID    string
	Name  string
}

// Authors is the schema definition for authors
var Authors = AuthorsTable{
	Table: "authors",
	ID:    "id",
	Name:  "name",
}

// Col returns column qualified with the table name.
func (t AuthorsTable) Col(column string) string {
	return t.Table + "." + column
}
