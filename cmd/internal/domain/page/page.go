package page

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 2000
)

var (
	ErrInvalidSort     = errors.New("invalid sort expression")
	ErrUnknownProperty = errors.New("unknown sort property")
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Order struct {
	Property  string
	Direction Direction
}

// Pageable selects one page of a sorted result set. Page is zero based.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func Of(page, size int, sort ...Order) Pageable {
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Offset saturates at math.MaxInt instead of wrapping around.
func (p Pageable) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Normalize clamps page and size into the accepted range. Page is capped
// so that Page*Size fits in an int.
func (p Pageable) Normalize(maxSize int) Pageable {
	if maxSize <= 0 {
		maxSize = MaxSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if p.Page > math.MaxInt/p.Size {
		p.Page = math.MaxInt / p.Size
	}
	return p
}

// ParseSort reads "property[,asc|desc]" expressions, one per query value.
func ParseSort(values []string) ([]Order, error) {
	orders := make([]Order, 0, len(values))
	for _, raw := range values {
		parts := strings.Split(raw, ",")
		property := strings.TrimSpace(parts[0])
		if property == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
		}

		order := Order{Property: property, Direction: Asc}
		switch len(parts) {
		case 1:
		case 2:
			dir := Direction(strings.ToLower(strings.TrimSpace(parts[1])))
			if dir != Asc && dir != Desc {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
			}
			order.Direction = dir
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T
	Number        int
	Size          int
	TotalElements int64
}

func New[T any](content []T, pageable Pageable, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{
		Content:       content,
		Number:        pageable.Page,
		Size:          pageable.Size,
		TotalElements: total,
	}
}

func (p *Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages()
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 0
}

// Map converts the content while keeping the paging metadata.
func Map[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	content := make([]R, len(p.Content))
	for i, item := range p.Content {
		content[i] = fn(item)
	}
	return &Page[R]{
		Content:       content,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}
}
