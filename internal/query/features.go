package query

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Op is a comparison operator accepted in query filters.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Reserved parameters that never become filters.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Column names must be plain identifiers. Anything else is dropped so raw
// query input can never reach the SQL layer.
var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type Filter struct {
	Field string
	Op    Op
	Value string
}

type SortField struct {
	Field string
	Desc  bool
}

// Features is the parsed form of the request's query string. Applied order is
// always filter -> sort -> select -> paginate, regardless of parameter order.
type Features struct {
	Filters []Filter
	Sort    []SortField
	Select  []string
	Omit    []string
	Page    int
	Limit   int
}

// Parse translates raw query parameters into Features.
//
//	?price[gte]=100&difficulty=easy&sort=-price,name&fields=name,price&page=2&limit=5
func Parse(values url.Values) *Features {
	f := &Features{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}

	// Deterministic filter order regardless of map iteration.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values.Get(key)
		if value == "" {
			continue
		}

		switch key {
		case "page":
			if page := atoi(value); page > 0 {
				f.Page = page
			}
		case "limit":
			if limit := atoi(value); limit > 0 {
				f.Limit = limit
				if f.Limit > MaxLimit {
					f.Limit = MaxLimit
				}
			}
		case "sort":
			f.parseSort(value)
		case "fields":
			f.parseFields(value)
		default:
			f.parseFilter(key, value)
		}
	}

	return f
}

func (f *Features) parseFilter(key, value string) {
	field, op := key, OpEq

	// price[gte]=100 form
	if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
		switch Op(key[i+1 : len(key)-1]) {
		case OpGt, OpGte, OpLt, OpLte:
			field, op = key[:i], Op(key[i+1:len(key)-1])
		default:
			return // unknown operator suffix
		}
	}

	if !columnPattern.MatchString(field) || reservedParams[field] {
		return
	}

	f.Filters = append(f.Filters, Filter{Field: field, Op: op, Value: value})
}

func (f *Features) parseSort(value string) {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if !columnPattern.MatchString(part) {
			continue
		}
		f.Sort = append(f.Sort, SortField{Field: part, Desc: desc})
	}
}

func (f *Features) parseFields(value string) {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if omit := strings.TrimPrefix(part, "-"); omit != part {
			if columnPattern.MatchString(omit) {
				f.Omit = append(f.Omit, omit)
			}
			continue
		}
		if columnPattern.MatchString(part) {
			f.Select = append(f.Select, part)
		}
	}
}

// Apply chains the parsed features onto a gorm query in the fixed order:
// filtering first so pagination counts post-filter rows.
func (f *Features) Apply(db *gorm.DB) *gorm.DB {
	for _, flt := range f.Filters {
		db = db.Where(fmt.Sprintf("%s %s ?", flt.Field, sqlOp(flt.Op)), flt.Value)
	}

	for _, s := range f.Sort {
		order := s.Field
		if s.Desc {
			order += " DESC"
		}
		db = db.Order(order)
	}

	if len(f.Select) > 0 {
		db = db.Select(f.Select)
	} else if len(f.Omit) > 0 {
		db = db.Omit(f.Omit...)
	}

	return db.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
}

func sqlOp(op Op) string {
	switch op {
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return "="
	}
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
		// Anything past eight digits is not a sane page or limit, and an
		// unchecked accumulator would overflow.
		if n > 99999999 {
			return 0
		}
	}
	return n
}
