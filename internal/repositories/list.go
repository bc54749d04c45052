package repositories

import (
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps the row offset of any page within an int.
	MaxPage = math.MaxInt / MaxPageSize
)

// ListOptions controls paging and ordering of List queries. SortBy uses the
// JSON field names of the entity; unknown names fall back to id.
type ListOptions struct {
	Page     int
	PageSize int
	SortBy   string
	Order    string
}

// Page is one page of a List result.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func (o ListOptions) normalize() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Page > MaxPage {
		o.Page = MaxPage
	}
	if o.PageSize < 1 || o.PageSize > MaxPageSize {
		o.PageSize = DefaultPageSize
	}
	o.Order = strings.ToLower(o.Order)
	if o.Order != "asc" && o.Order != "desc" {
		o.Order = "asc"
	}
	return o
}

// paginate counts and fetches one page of query. sortColumns maps the
// accepted SortBy values to column names.
func paginate[T any](query *gorm.DB, opts ListOptions, sortColumns map[string]string) (*Page[T], error) {
	opts = opts.normalize()
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "id"
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	ordered := query.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: opts.Order == "desc"})
	if column != "id" {
		// stable pages when the sort column has ties
		ordered = ordered.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	items := make([]T, 0, opts.PageSize)
	err := ordered.
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}

	return &Page[T]{Items: items, Total: total, Page: opts.Page, PageSize: opts.PageSize}, nil
}
