// Package query normalizes pagination, sorting, and filtering parameters
// into a validated specification that list operations apply uniformly.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/platform/apierr"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Spec is a normalized, validated query description. SortColumn is the
// database column name, already resolved through the entity's allow-list.
type Spec struct {
	Limit      *int
	Offset     int
	SortColumn string
	SortOrder  string
	Search     string
}

// Params carries the raw string parameters as they arrive on the wire.
type Params struct {
	Limit     string
	Offset    string
	SortField string
	SortOrder string
	Search    string
}

// Build validates raw parameters against an entity's sortable-field
// allow-list (API field name -> column name; nil means no sortable fields).
// Unknown sort fields, bad sort orders, and negative or non-numeric
// limit/offset values are rejected.
func Build(p Params, sortable map[string]string) (Spec, error) {
	spec := Spec{Search: strings.TrimSpace(p.Search)}

	if p.Limit != "" {
		n, err := strconv.Atoi(p.Limit)
		if err != nil || n < 0 {
			return Spec{}, apierr.InvalidArgument("limit must be a non-negative integer, got %q", p.Limit)
		}
		spec.Limit = &n
	}
	if p.Offset != "" {
		n, err := strconv.Atoi(p.Offset)
		if err != nil || n < 0 {
			return Spec{}, apierr.InvalidArgument("offset must be a non-negative integer, got %q", p.Offset)
		}
		spec.Offset = n
	}

	if p.SortField != "" {
		col, ok := sortable[p.SortField]
		if !ok {
			return Spec{}, apierr.InvalidArgument("unknown sort field %q", p.SortField)
		}
		spec.SortColumn = col
		spec.SortOrder = OrderAsc
		switch strings.ToLower(p.SortOrder) {
		case "":
		case OrderAsc:
		case OrderDesc:
			spec.SortOrder = OrderDesc
		default:
			return Spec{}, apierr.InvalidArgument("sort order must be asc or desc, got %q", p.SortOrder)
		}
	} else if p.SortOrder != "" {
		return Spec{}, apierr.InvalidArgument("sortOrder given without sortField")
	}

	return spec, nil
}

// Apply attaches the spec's ordering and window to a gorm query. Listings
// without an explicit sort field fall back to id descending so results are
// stable across identical calls.
func (s Spec) Apply(db *gorm.DB) *gorm.DB {
	if s.SortColumn != "" {
		db = db.Order(fmt.Sprintf("%s %s", s.SortColumn, strings.ToUpper(s.SortOrder)))
	} else {
		db = db.Order("id DESC")
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	if s.Limit != nil {
		db = db.Limit(*s.Limit)
	}
	return db
}

// likeEscaper neutralizes LIKE metacharacters in user-supplied search
// terms so they match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ApplySearch adds a case-insensitive substring match over the given text
// columns. A blank search term leaves the query untouched.
func (s Spec) ApplySearch(db *gorm.DB, columns ...string) *gorm.DB {
	if s.Search == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + likeEscaper.Replace(strings.ToLower(s.Search)) + "%"
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
		args = append(args, pattern)
	}
	return db.Where(strings.Join(conds, " OR "), args...)
}
