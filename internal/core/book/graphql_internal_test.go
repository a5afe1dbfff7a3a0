package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookshelf/pkg/pointer"
)

func TestFilterFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want Filter
	}{
		{"empty", map[string]interface{}{}, Filter{}},
		{"explicit_nulls", map[string]interface{}{ArgAuthorIDs: nil, ArgSearch: nil, ArgLimit: nil}, Filter{}},
		{"ids_list", map[string]interface{}{ArgAuthorIDs: []interface{}{1, 2}}, Filter{AuthorIDs: []int{1, 2}}},
		{"null_ids_skipped", map[string]interface{}{ArgAuthorIDs: []interface{}{nil, 3, nil}}, Filter{AuthorIDs: []int{3}}},
		{"all_null_ids", map[string]interface{}{ArgAuthorIDs: []interface{}{nil}}, Filter{}},
		{"single_id", map[string]interface{}{ArgAuthorIDs: 7}, Filter{AuthorIDs: []int{7}}},
		{"search", map[string]interface{}{ArgSearch: "ob"}, Filter{Search: "ob"}},
		{"limit_zero_kept", map[string]interface{}{ArgLimit: 0}, Filter{Limit: pointer.To(0)}},
		{"limit", map[string]interface{}{ArgLimit: 10}, Filter{Limit: pointer.To(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterFromArgs(tt.args))
		})
	}
}
