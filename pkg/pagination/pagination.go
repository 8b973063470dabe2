// Package pagination is the generic offset/limit paging facility shared by
// list endpoints across modules. It deliberately knows nothing about the
// entities being paged; callers slice their own result sets with Paginate.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageOptions captures the paging parameters of a list request.
type PageOptions struct {
	Page    int
	PerPage int
}

// PageMeta describes the page that was produced.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// FromRequest parses page/per_page query parameters, clamping to sane bounds.
// Absent or malformed values fall back to defaults rather than erroring;
// paging parameters are never a reason to fail a read.
func FromRequest(r *http.Request) PageOptions {
	opts := PageOptions{Page: 1, PerPage: DefaultPerPage}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		opts.PerPage = v
	}
	return opts.Normalize()
}

// Normalize clamps options into the supported range.
func (o PageOptions) Normalize() PageOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	if o.PerPage > MaxPerPage {
		o.PerPage = MaxPerPage
	}
	return o
}

// Offset returns the number of items to skip for this page.
func (o PageOptions) Offset() int {
	return (o.Page - 1) * o.PerPage
}

// Paginate slices items according to opts and returns the page plus metadata.
// A page past the end yields an empty (non-nil) slice.
func Paginate[T any](items []T, opts PageOptions) ([]T, PageMeta) {
	opts = opts.Normalize()
	total := len(items)
	meta := PageMeta{
		Page:       opts.Page,
		PerPage:    opts.PerPage,
		Total:      total,
		TotalPages: (total + opts.PerPage - 1) / opts.PerPage,
	}
	start := opts.Offset()
	if start >= total {
		return []T{}, meta
	}
	end := start + opts.PerPage
	if end > total {
		end = total
	}
	return items[start:end], meta
}
