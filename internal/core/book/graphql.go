package book

import (
	"github.com/graphql-go/graphql"

	"github.com/taibuivan/bookshelf/pkg/pointer"
)

/*
NewSchema builds the read-only catalog schema:

	type Author { name: String }
	type Book   { title: String, author: Author }
	type Query  { books(authorIds: [Int], search: String, limit: Int): [Book] }

Book and Author fields are served by the default resolver through their json tags.
*/
func NewSchema(service *Service) (graphql.Schema, error) {
	authorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Author",
		Fields: graphql.Fields{
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	bookType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Book",
		Fields: graphql.Fields{
			"title":  &graphql.Field{Type: graphql.String},
			"author": &graphql.Field{Type: authorType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"books": &graphql.Field{
				Type: graphql.NewList(bookType),
				Args: graphql.FieldConfigArgument{
					ArgAuthorIDs: &graphql.ArgumentConfig{Type: graphql.NewList(graphql.Int)},
					ArgSearch:    &graphql.ArgumentConfig{Type: graphql.String},
					ArgLimit:     &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					books, err := service.ListBooks(params.Context, filterFromArgs(params.Args))
					if err != nil {
						return nil, err
					}
					return books, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// filterFromArgs maps coerced GraphQL arguments onto a Filter. Null entries
// in authorIds are skipped; a bare Int is accepted as a one-element list.
func filterFromArgs(args map[string]interface{}) Filter {
	var filter Filter

	switch ids := args[ArgAuthorIDs].(type) {
	case []interface{}:
		for _, id := range ids {
			if value, ok := id.(int); ok {
				filter.AuthorIDs = append(filter.AuthorIDs, value)
			}
		}
	case int:
		filter.AuthorIDs = []int{ids}
	}

	if search, ok := args[ArgSearch].(string); ok {
		filter.Search = search
	}

	if limit, ok := args[ArgLimit].(int); ok {
		filter.Limit = pointer.To(limit)
	}

	return filter
}
