package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPathID(t *testing.T) {
	cases := []struct {
		raw    string
		want   uint
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/jobs/x", nil)
		req.SetPathValue("id", c.raw)
		got, ok := pathID(req, "id")
		if got != c.want || ok != c.wantOK {
			t.Errorf("pathID(%q) = (%d, %v), want (%d, %v)", c.raw, got, ok, c.want, c.wantOK)
		}
	}
}

func TestPagination(t *testing.T) {
	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 20, 0},
		{"?limit=50", 50, 0},
		{"?limit=500", 20, 0}, // above the cap, fall back to default
		{"?limit=0", 20, 0},
		{"?page=3", 20, 40},
		{"?limit=10&page=2", 10, 10},
		{"?page=1", 20, 0},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/jobs"+c.query, nil)
		limit, offset := pagination(req)
		if limit != c.wantLimit || offset != c.wantOffset {
			t.Errorf("pagination(%q) = (%d, %d), want (%d, %d)", c.query, limit, offset, c.wantLimit, c.wantOffset)
		}
	}
}
