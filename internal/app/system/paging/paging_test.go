package paging_test

import (
	"net/http/httptest"
	"testing"

	"github.com/quorumhq/quorum/internal/app/system/paging"
)

func TestParsePage(t *testing.T) {
	cases := []struct {
		url  string
		want int
	}{
		{"/news/", 1},
		{"/news/?page=3", 3},
		{"/news/?page=0", 1},
		{"/news/?page=-2", 1},
		{"/news/?page=abc", 1},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.url, nil)
		if got := paging.ParsePage(r, 8); got.Number != tc.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tc.url, got.Number, tc.want)
		}
	}
}

func TestSkipAndLimit(t *testing.T) {
	p := paging.Page{Number: 3, Size: 20}
	if p.Skip() != 40 {
		t.Errorf("Skip = %d, want 40", p.Skip())
	}
	if p.LimitPlusOne() != 21 {
		t.Errorf("LimitPlusOne = %d, want 21", p.LimitPlusOne())
	}
}

func TestTrim(t *testing.T) {
	got, hasNext := paging.Trim([]int{1, 2, 3, 4, 5, 6}, 5)
	if len(got) != 5 || !hasNext {
		t.Errorf("Trim(6 items, 5) = %d items, hasNext=%v; want 5, true", len(got), hasNext)
	}

	got, hasNext = paging.Trim([]int{1, 2, 3}, 5)
	if len(got) != 3 || hasNext {
		t.Errorf("Trim(3 items, 5) = %d items, hasNext=%v; want 3, false", len(got), hasNext)
	}
}

func TestSlicePage_SevenItemsSizeFive(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p1, next1 := paging.SlicePage(items, paging.Page{Number: 1, Size: 5})
	if len(p1) != 5 || !next1 {
		t.Errorf("page 1: %d items, next=%v; want 5, true", len(p1), next1)
	}

	p2, next2 := paging.SlicePage(items, paging.Page{Number: 2, Size: 5})
	if len(p2) != 2 || next2 {
		t.Errorf("page 2: %d items, next=%v; want 2, false", len(p2), next2)
	}
	if p2[0] != 6 || p2[1] != 7 {
		t.Errorf("page 2 contents = %v, want [6 7]", p2)
	}

	p3, next3 := paging.SlicePage(items, paging.Page{Number: 3, Size: 5})
	if len(p3) != 0 || next3 {
		t.Errorf("page 3: %d items, next=%v; want 0, false", len(p3), next3)
	}
}

func TestClampFeedSize(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 5}, {4, 5}, {5, 5}, {6, 6}, {8, 8}, {9, 8}, {100, 8},
	}
	for _, tc := range cases {
		if got := paging.ClampFeedSize(tc.in); got != tc.want {
			t.Errorf("ClampFeedSize(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
