package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOf(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		wantPage   int
		wantPages  int
		wantPageSz int
	}{
		{name: "47 items over 20 per page", total: 47, page: 1, limit: 20, wantPage: 1, wantPages: 3, wantPageSz: 20},
		{name: "page clamped to last", total: 47, page: 9, limit: 20, wantPage: 3, wantPages: 3, wantPageSz: 20},
		{name: "page clamped to first", total: 47, page: 0, limit: 20, wantPage: 1, wantPages: 3, wantPageSz: 20},
		{name: "zero limit falls back to default", total: 47, page: 1, limit: 0, wantPage: 1, wantPages: 3, wantPageSz: DefaultPageLimit},
		{name: "empty list still has one page", total: 0, page: 1, limit: 20, wantPage: 1, wantPages: 1, wantPageSz: 20},
		{name: "exact multiple", total: 40, page: 2, limit: 20, wantPage: 2, wantPages: 2, wantPageSz: 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PageOf(tt.total, tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantPageSz, p.Limit)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPageShowing(t *testing.T) {
	p := PageOf(47, 3, 20)
	assert.Equal(t, 41, p.Start())
	assert.Equal(t, 47, p.End())
	assert.Equal(t, "Showing 41 to 47 of 47", p.Showing())

	p = PageOf(47, 1, 20)
	assert.Equal(t, "Showing 1 to 20 of 47", p.Showing())

	empty := PageOf(0, 1, 20)
	assert.Equal(t, 0, empty.Start())
	assert.Equal(t, 0, empty.End())
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		page       int
		want       []int
	}{
		{name: "few pages show all buttons", totalPages: 3, page: 2, want: []int{1, 2, 3}},
		{name: "window pinned to the start", totalPages: 10, page: 2, want: []int{1, 2, 3, 4, 5}},
		{name: "page three still starts at one", totalPages: 10, page: 3, want: []int{1, 2, 3, 4, 5}},
		{name: "window centered in the middle", totalPages: 10, page: 5, want: []int{3, 4, 5, 6, 7}},
		{name: "window pinned to the end", totalPages: 10, page: 9, want: []int{6, 7, 8, 9, 10}},
		{name: "last page", totalPages: 10, page: 10, want: []int{6, 7, 8, 9, 10}},
		{name: "exactly five pages", totalPages: 5, page: 3, want: []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page{Page: tt.page, TotalPages: tt.totalPages}
			assert.Equal(t, tt.want, p.Window(5))
		})
	}
}

func TestPageHasTrailingEllipsis(t *testing.T) {
	assert.True(t, Page{Page: 1, TotalPages: 10}.HasTrailingEllipsis(5))
	assert.False(t, Page{Page: 9, TotalPages: 10}.HasTrailingEllipsis(5))
	assert.False(t, Page{Page: 2, TotalPages: 3}.HasTrailingEllipsis(5))
}
