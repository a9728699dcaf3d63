package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	f := Parse(url.Values{})

	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Empty(t, f.Filters)
	assert.Empty(t, f.Sort)
	assert.Empty(t, f.Select)
}

func TestParse_FullQuery(t *testing.T) {
	values, err := url.ParseQuery("price[gte]=100&sort=-price,name&page=2&limit=5&difficulty=easy")
	require.NoError(t, err)

	f := Parse(values)

	require.Len(t, f.Filters, 2)
	// Keys are processed in sorted order, so difficulty comes first.
	assert.Equal(t, Filter{Field: "difficulty", Op: OpEq, Value: "easy"}, f.Filters[0])
	assert.Equal(t, Filter{Field: "price", Op: OpGte, Value: "100"}, f.Filters[1])

	require.Len(t, f.Sort, 2)
	assert.Equal(t, SortField{Field: "price", Desc: true}, f.Sort[0])
	assert.Equal(t, SortField{Field: "name", Desc: false}, f.Sort[1])

	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Limit)
}

func TestParse_OperatorSuffixes(t *testing.T) {
	tests := []struct {
		key  string
		want Op
	}{
		{"price[gt]", OpGt},
		{"price[gte]", OpGte},
		{"price[lt]", OpLt},
		{"price[lte]", OpLte},
		{"price", OpEq},
	}

	for _, tt := range tests {
		f := Parse(url.Values{tt.key: []string{"10"}})
		require.Len(t, f.Filters, 1, "key %q", tt.key)
		assert.Equal(t, tt.want, f.Filters[0].Op, "key %q", tt.key)
		assert.Equal(t, "price", f.Filters[0].Field)
	}
}

func TestParse_UnknownOperatorDropped(t *testing.T) {
	f := Parse(url.Values{"price[like]": []string{"10"}})
	assert.Empty(t, f.Filters)
}

func TestParse_ReservedParamsAreNotFilters(t *testing.T) {
	values := url.Values{
		"sort":   []string{"price"},
		"page":   []string{"3"},
		"limit":  []string{"10"},
		"fields": []string{"name"},
	}

	f := Parse(values)

	assert.Empty(t, f.Filters)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, []string{"name"}, f.Select)
}

func TestParse_InvalidColumnNamesDropped(t *testing.T) {
	values := url.Values{
		"price; DROP TABLE tours": []string{"1"},
		"Price":                   []string{"1"},
		"1price":                  []string{"1"},
	}

	f := Parse(values)
	assert.Empty(t, f.Filters)
}

func TestParse_FieldExclusion(t *testing.T) {
	f := Parse(url.Values{"fields": []string{"-description,-images"}})

	assert.Empty(t, f.Select)
	assert.Equal(t, []string{"description", "images"}, f.Omit)
}

func TestParse_LimitCapped(t *testing.T) {
	f := Parse(url.Values{"limit": []string{"99999"}})
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestParse_InvalidPageAndLimitIgnored(t *testing.T) {
	f := Parse(url.Values{
		"page":  []string{"-1"},
		"limit": []string{"abc"},
	})

	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
}

func TestParse_OverlongNumbersIgnored(t *testing.T) {
	f := Parse(url.Values{
		"page":  []string{"99999999999999999999999999"},
		"limit": []string{"184467440737095516160"},
	})

	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
}

func TestParse_InvalidSortFieldsSkipped(t *testing.T) {
	f := Parse(url.Values{"sort": []string{"price,name; DROP,-ratings_average"}})

	require.Len(t, f.Sort, 2)
	assert.Equal(t, "price", f.Sort[0].Field)
	assert.Equal(t, SortField{Field: "ratings_average", Desc: true}, f.Sort[1])
}

func TestSQLOp(t *testing.T) {
	assert.Equal(t, ">", sqlOp(OpGt))
	assert.Equal(t, ">=", sqlOp(OpGte))
	assert.Equal(t, "<", sqlOp(OpLt))
	assert.Equal(t, "<=", sqlOp(OpLte))
	assert.Equal(t, "=", sqlOp(OpEq))
}
