package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestDefaultsAndClamping(t *testing.T) {
	opts := FromRequest(httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, PageOptions{Page: 1, PerPage: DefaultPerPage}, opts)

	opts = FromRequest(httptest.NewRequest("GET", "/x?page=3&per_page=50", nil))
	assert.Equal(t, PageOptions{Page: 3, PerPage: 50}, opts)

	opts = FromRequest(httptest.NewRequest("GET", "/x?page=-1&per_page=9999", nil))
	assert.Equal(t, PageOptions{Page: 1, PerPage: MaxPerPage}, opts)

	opts = FromRequest(httptest.NewRequest("GET", "/x?page=abc", nil))
	assert.Equal(t, 1, opts.Page)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, PageOptions{Page: 2, PerPage: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, PageMeta{Page: 2, PerPage: 2, Total: 5, TotalPages: 3}, meta)

	// Last, partial page.
	page, _ = Paginate(items, PageOptions{Page: 3, PerPage: 2})
	assert.Equal(t, []int{5}, page)

	// Past the end: empty but non-nil.
	page, meta = Paginate(items, PageOptions{Page: 9, PerPage: 2})
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 5, meta.Total)

	page, meta = Paginate([]int{}, PageOptions{})
	assert.Empty(t, page)
	assert.Equal(t, 0, meta.TotalPages)
}
