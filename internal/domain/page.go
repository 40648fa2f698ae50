package domain

import "fmt"

const DefaultPageLimit = 20

// Page describes one page of a server-paginated list. Totals come from the
// server and are trusted as-is.
type Page struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func PageOf(total, page, limit int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Page{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Start returns the one-based index of the first item on the page.
func (p Page) Start() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.Limit + 1
}

// End returns the one-based index of the last item on the page.
func (p Page) End() int {
	end := p.Page * p.Limit
	if end > p.Total {
		end = p.Total
	}
	return end
}

// Showing renders the "Showing X to Y of Z" caption under a paginated table.
func (p Page) Showing() string {
	return fmt.Sprintf("Showing %d to %d of %d", p.Start(), p.End(), p.Total)
}

// Window returns at most size visible page buttons. Long ranges keep the
// window centered on the current page and clamped to both ends, compressing
// everything else behind an ellipsis.
func (p Page) Window(size int) []int {
	if size <= 0 {
		size = 5
	}
	n := p.TotalPages
	if n < size {
		size = n
	}
	start := 1
	switch {
	case n <= size || p.Page <= size/2+1:
		start = 1
	case p.Page >= n-size/2:
		start = n - size + 1
	default:
		start = p.Page - size/2
	}
	window := make([]int, 0, size)
	for i := 0; i < size; i++ {
		window = append(window, start+i)
	}
	return window
}

// HasTrailingEllipsis reports whether the window leaves pages hidden before
// the final page button.
func (p Page) HasTrailingEllipsis(size int) bool {
	w := p.Window(size)
	return len(w) > 0 && w[len(w)-1] < p.TotalPages
}
