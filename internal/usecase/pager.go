package usecase

import "fmt"

// NavTarget addresses an adjacent page. Data round-trips through the
// stateless callback channel, so it must be self-describing: prefix plus
// target page index.
type NavTarget struct {
	Page int
	Data string
}

type PageNav struct {
	Prev *NavTarget
	Next *NavTarget
}

func (n PageNav) Empty() bool {
	return n.Prev == nil && n.Next == nil
}

// Paginate windows items to [page*pageSize, page*pageSize+pageSize) and
// describes the adjacent pages. Out-of-range pages yield an empty window;
// there are no error conditions. Per-item actions are the caller's business,
// the pager is agnostic to what the items mean.
func Paginate[T any](items []T, page, pageSize int, navPrefix string) ([]T, PageNav) {
	if page < 0 || pageSize < 1 {
		return nil, PageNav{}
	}

	start := page * pageSize
	end := start + pageSize

	var window []T
	if start < len(items) {
		if end > len(items) {
			end = len(items)
		}
		window = items[start:end]
	}

	var nav PageNav
	if start > 0 {
		nav.Prev = &NavTarget{
			Page: page - 1,
			Data: fmt.Sprintf("%s_%d", navPrefix, page-1),
		}
	}
	if page*pageSize+pageSize < len(items) {
		nav.Next = &NavTarget{
			Page: page + 1,
			Data: fmt.Sprintf("%s_%d", navPrefix, page+1),
		}
	}

	return window, nav
}
