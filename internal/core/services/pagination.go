package services

import (
	"net/url"
	"strconv"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// normalisePage applies defaults and limits to a requested page.
func normalisePage(page domain.Page, settings domain.PaginationSettings) domain.Page {
	if page.Number < 1 {
		page.Number = 1
	}
	if page.Size < 1 {
		page.Size = settings.PageSize
	}
	if settings.MaxPageSize > 0 && page.Size > settings.MaxPageSize {
		page.Size = settings.MaxPageSize
	}
	return page
}

// pageCount returns the number of pages for count records; never below one.
func pageCount(count, size int) int {
	if count == 0 || size < 1 {
		return 1
	}
	return (count + size - 1) / size
}

// paginate adds page-number pagination meta and links to a collection document.
func paginate(
	doc *domain.Document,
	path string,
	page domain.Page,
	defaultSize int,
	count int,
	include domain.InclusionRequest,
	baseURL string,
) {
	pages := pageCount(count, page.Size)

	if doc.Meta == nil {
		doc.Meta = make(map[string]any)
	}
	doc.Meta["pagination"] = map[string]any{
		"page":  page.Number,
		"pages": pages,
		"count": count,
	}

	link := func(n int) *string {
		q := url.Values{}
		q.Set("page[number]", strconv.Itoa(n))
		if page.Size != defaultSize {
			q.Set("page[size]", strconv.Itoa(page.Size))
		}
		if include.Given {
			q.Set("include", include.Raw)
		}
		s := baseURL + path + "?" + q.Encode()
		return &s
	}

	doc.Links = map[string]*string{
		"first": link(1),
		"last":  link(pages),
		"next":  nil,
		"prev":  nil,
	}
	if page.Number < pages {
		doc.Links["next"] = link(page.Number + 1)
	}
	if page.Number > 1 {
		doc.Links["prev"] = link(page.Number - 1)
	}
}
