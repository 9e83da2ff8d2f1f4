// Package paging slices filtered results into fixed-size pages and computes
// the navigation arithmetic around them.
package paging

import "github.com/okian/trailboard/internal/domain/types"

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 10

// windowHead is how many leading page links the window always shows.
const windowHead = 5

// Paginate returns the rows of page (1-based) for the given size. The slice
// bounds are clamped; page itself is not, so an out-of-range page yields an
// empty result. A non-positive size is treated as DefaultPageSize.
func Paginate(ds types.Dataset, page, size int) types.Dataset {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 || page-1 >= PageCount(len(ds), size) {
		return types.Dataset{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(ds) {
		end = len(ds)
	}
	return ds[start:end:end]
}

// PageCount returns ceil(n/size). Zero results mean zero pages; callers hide
// pagination controls in that case.
func PageCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage restricts page to [1, max(1, pageCount)].
func ClampPage(page, pageCount int) int {
	if pageCount < 1 {
		pageCount = 1
	}
	switch {
	case page < 1:
		return 1
	case page > pageCount:
		return pageCount
	default:
		return page
	}
}

// Prev returns the previous page, never below 1.
func Prev(current int) int {
	return ClampPage(current-1, current)
}

// Next returns the following page, never past total.
func Next(current, total int) int {
	return ClampPage(current+1, total)
}

// Rank returns the 1-based position in the filtered result of the row at
// index on page.
func Rank(page, size, index int) int {
	return (page-1)*size + index + 1
}

// Item is one element of a pagination control.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// Window lays out the pagination control: the first five pages, then for
// longer results an ellipsis followed by the current page when it lies past
// the head, and an ellipsis followed by the last page unless the current
// page already is the last one.
func Window(current, total int) []Item {
	if total <= 0 {
		return nil
	}
	head := total
	if head > windowHead {
		head = windowHead
	}
	items := make([]Item, 0, head+4)
	for p := 1; p <= head; p++ {
		items = append(items, Item{Page: p, Current: p == current})
	}
	if total <= windowHead {
		return items
	}
	if current > windowHead {
		items = append(items, Item{Ellipsis: true}, Item{Page: current, Current: true})
	}
	if current <= windowHead || current < total {
		items = append(items, Item{Ellipsis: true}, Item{Page: total, Current: current == total})
	}
	return items
}
