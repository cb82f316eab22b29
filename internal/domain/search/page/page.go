// Package page holds the pagination and sort request of a search and its result page.
package page

import (
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/knowhub/internal/domain"
)

// Pagination limits.
const (
	DefaultSize = 10
	MaxSize     = 100
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection accepts ASC or DESC in any case; blank means ASC.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(Asc):
		return Asc, nil
	case string(Desc):
		return Desc, nil
	default:
		return "", domain.NewInvalidValue("sortDirection", s, "expected ASC or DESC")
	}
}

// Request is a validated page and sort selection.
type Request struct {
	number    int
	size      int
	sortField string
	direction Direction
}

// NewRequest validates pagination input. A zero size selects DefaultSize and
// sizes above MaxSize are clamped. An empty sortField means the identifier.
func NewRequest(number, size int, sortField, direction string) (Request, error) {
	if number < 0 {
		return Request{}, domain.NewInvalidValue("page", strconv.Itoa(number), "must not be negative")
	}
	if size < 0 {
		return Request{}, domain.NewInvalidValue("pageSize", strconv.Itoa(size), "must be positive")
	}
	if size == 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if number > math.MaxInt/size {
		return Request{}, domain.NewInvalidValue("page", strconv.Itoa(number), "is out of range")
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return Request{}, err
	}
	return Request{
		number:    number,
		size:      size,
		sortField: strings.TrimSpace(sortField),
		direction: dir,
	}, nil
}

// Default returns the first page with default size, sorted by identifier ascending.
func Default() Request {
	return Request{size: DefaultSize, direction: Asc}
}

// Number returns the zero-based page number.
func (r Request) Number() int { return r.number }

// Size returns the page size.
func (r Request) Size() int {
	if r.size == 0 {
		return DefaultSize
	}
	return r.size
}

// SortField returns the requested sort field, empty for the default.
func (r Request) SortField() string { return r.sortField }

// Direction returns the sort direction.
func (r Request) Direction() Direction {
	if r.direction == "" {
		return Asc
	}
	return r.direction
}

// Offset returns the number of rows skipped before this page.
func (r Request) Offset() int { return r.number * r.Size() }

// Clamp returns r with its size capped at limit. Non-positive limits are ignored.
func (r Request) Clamp(limit int) Request {
	if limit > 0 && r.Size() > limit {
		r.size = limit
	}
	return r
}

// Page is one slice of the matching entities plus the total match count.
type Page[T any] struct {
	PageNumber int
	PageSize   int
	TotalCount int
	Items      []T
}

// New wraps items fetched for req.
func New[T any](req Request, total int, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		PageNumber: req.Number(),
		PageSize:   req.Size(),
		TotalCount: total,
		Items:      items,
	}
}

// TotalPages returns the number of pages needed for TotalCount.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// Map converts the items of p, keeping the page metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return Page[U]{
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		Items:      items,
	}
}
