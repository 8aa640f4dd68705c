package listutil

import (
	"net/url"
	"slices"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, DefaultPerPage},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}}, 3, 50},
		{"per_page not offered", url.Values{"per_page": {"25"}}, 1, DefaultPerPage},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage},
		{"garbage", url.Values{"page": {"x"}, "per_page": {"y"}}, 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got page=%d per_page=%d, want %d/%d", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestNewPageInfo_Clamps(t *testing.T) {
	info := NewPageInfo(PageParams{Page: 9, PerPage: 10}, 25)
	if info.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", info.TotalPages)
	}
	if info.Page != 3 {
		t.Errorf("Page = %d, want clamped to 3", info.Page)
	}

	empty := NewPageInfo(PageParams{Page: 1, PerPage: 10}, 0)
	if empty.TotalPages != 1 || empty.StartRow() != 0 || empty.EndRow() != 0 {
		t.Errorf("empty list: %+v start=%d end=%d", empty, empty.StartRow(), empty.EndRow())
	}
	if empty.ShowPagination() {
		t.Error("single page should hide pagination")
	}
}

func TestPageInfo_Rows(t *testing.T) {
	info := NewPageInfo(PageParams{Page: 2, PerPage: 10}, 15)
	if info.Offset() != 10 || info.StartRow() != 11 || info.EndRow() != 15 {
		t.Errorf("offset=%d start=%d end=%d, want 10/11/15", info.Offset(), info.StartRow(), info.EndRow())
	}
	if !info.ShowPagination() {
		t.Error("two pages should show pagination")
	}
}

func TestPageInfo_PageNumbers(t *testing.T) {
	tests := []struct {
		page, total int
		want        []int
	}{
		{1, 30, []int{1, 2, 3}},
		{1, 100, []int{1, 2, 3, 4, 5}},
		{5, 100, []int{3, 4, 5, 6, 7}},
		{10, 100, []int{6, 7, 8, 9, 10}},
	}
	for _, tt := range tests {
		info := NewPageInfo(PageParams{Page: tt.page, PerPage: 10}, tt.total)
		if got := info.PageNumbers(); !slices.Equal(got, tt.want) {
			t.Errorf("page %d of %d: got %v, want %v", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	got := Slice(items, NewPageInfo(PageParams{Page: 2, PerPage: 10}, len(items)))
	if !slices.Equal(got, items) {
		t.Errorf("clamped page: got %v", got)
	}

	got = Slice(items, PageInfo{Page: 2, PerPage: 3, Total: 7, TotalPages: 3})
	if !slices.Equal(got, []int{4, 5, 6}) {
		t.Errorf("page 2: got %v", got)
	}

	got = Slice(items, PageInfo{Page: 3, PerPage: 3, Total: 7, TotalPages: 3})
	if !slices.Equal(got, []int{7}) {
		t.Errorf("last page: got %v", got)
	}
}
