// Package listings owns the authoritative listing data and derives the
// sorted set and the visible page from it.
package listings

import (
	"cmp"
	"slices"

	"stayfinder/internal/domain"
)

// Set is the listing set manager. It is not safe for concurrent use;
// the widget drives it from a single thread of control.
type Set struct {
	base     []domain.Listing
	sorted   []int // indexes into base, in display order
	index    map[string]int
	order    SortOrder
	page     int
	pageSize int
}

// New creates a set with the given page size. A size of 0 or less disables paging.
func New(pageSize int) *Set {
	s := &Set{pageSize: pageSize}
	s.SetBase(nil)
	return s
}

// SetBase replaces the base set and resets sort order and page.
func (s *Set) SetBase(listings []domain.Listing) {
	s.base = slices.Clone(listings)
	s.order = SortDefault
	s.page = 1
	s.resort()
}

// SetSortOrder reorders the sorted set and returns to page 1.
func (s *Set) SetSortOrder(order SortOrder) error {
	parsed, err := ParseSortOrder(string(order))
	if err != nil {
		return err
	}
	s.order = parsed
	s.page = 1
	s.resort()
	return nil
}

// SetPage stores n clamped into [1, TotalPages].
func (s *Set) SetPage(n int) {
	s.page = max(1, min(n, s.TotalPages()))
}

// VisiblePage returns the listings on the current page in sorted order.
func (s *Set) VisiblePage() []domain.Listing {
	start, end := 0, len(s.sorted)
	if s.Paging() {
		start = min((s.page-1)*s.pageSize, len(s.sorted))
		end = min(start+s.pageSize, len(s.sorted))
	}
	out := make([]domain.Listing, 0, end-start)
	for _, i := range s.sorted[start:end] {
		out = append(out, s.base[i])
	}
	return out
}

// IndexOf returns the position of id within the sorted set.
func (s *Set) IndexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// PageOf returns the page the listing with id lives on.
func (s *Set) PageOf(id string) (int, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return 0, false
	}
	if !s.Paging() {
		return 1, true
	}
	return i/s.pageSize + 1, true
}

// Lookup returns the listing with id.
func (s *Set) Lookup(id string) (domain.Listing, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return domain.Listing{}, false
	}
	return s.base[s.sorted[i]], true
}

// TotalPages is max(1, ceil(len/pageSize)) with paging, otherwise 1.
func (s *Set) TotalPages() int {
	if !s.Paging() {
		return 1
	}
	return max(1, (len(s.sorted)+s.pageSize-1)/s.pageSize)
}

// Paging reports whether the set is split into pages.
func (s *Set) Paging() bool {
	return s.pageSize > 0
}

func (s *Set) Page() int { return s.page }
func (s *Set) PageSize() int { return s.pageSize }
func (s *Set) SortOrder() SortOrder { return s.order }
func (s *Set) Len() int { return len(s.base) }

// Base returns a copy of the base set in its original order.
func (s *Set) Base() []domain.Listing {
	return slices.Clone(s.base)
}

// Sorted returns a copy of the whole sorted set.
func (s *Set) Sorted() []domain.Listing {
	out := make([]domain.Listing, len(s.sorted))
	for i, j := range s.sorted {
		out[i] = s.base[j]
	}
	return out
}

func (s *Set) resort() {
	s.sorted = make([]int, len(s.base))
	for i := range s.sorted {
		s.sorted[i] = i
	}

	switch s.order {
	case SortPriceAsc:
		slices.SortStableFunc(s.sorted, func(a, b int) int {
			return cmp.Compare(s.base[a].Price.Value(), s.base[b].Price.Value())
		})
	case SortPriceDesc:
		slices.SortStableFunc(s.sorted, func(a, b int) int {
			return cmp.Compare(s.base[b].Price.Value(), s.base[a].Price.Value())
		})
	}

	s.index = make(map[string]int, len(s.sorted))
	for pos, i := range s.sorted {
		id := s.base[i].ID
		if id == "" {
			continue
		}
		// first occurrence wins for duplicate ids
		if _, dup := s.index[id]; !dup {
			s.index[id] = pos
		}
	}
}
