package grid

import "github.com/Veraticus/paydesk/internal/model"

// DefaultPageSize is used when a page size is not positive.
const DefaultPageSize = 10

// Page is one window of the visible records.
type Page struct {
	Records    []model.Record
	Number     int
	TotalPages int
}

// TotalPages returns max(1, ceil(count/pageSize)).
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns the records of page (1-based). A page past the end yields
// an empty window; callers clamp with PageState.Clamp first.
func Paginate(records []model.Record, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	result := Page{Number: page, TotalPages: TotalPages(len(records), pageSize)}
	start := (page - 1) * pageSize
	if start >= len(records) {
		result.Records = []model.Record{}
		return result
	}
	end := min(start+pageSize, len(records))
	result.Records = records[start:end]
	return result
}

// PageState is the current page and page size of one table.
type PageState struct {
	CurrentPage  int
	ItemsPerPage int
}

// NewPageState starts on page 1.
func NewPageState(itemsPerPage int) PageState {
	if itemsPerPage <= 0 {
		itemsPerPage = DefaultPageSize
	}
	return PageState{CurrentPage: 1, ItemsPerPage: itemsPerPage}
}

// Clamp moves CurrentPage into [1, TotalPages(count)] and reports whether it changed.
func (p *PageState) Clamp(count int) bool {
	if p.ItemsPerPage <= 0 {
		p.ItemsPerPage = DefaultPageSize
	}
	before := p.CurrentPage
	total := TotalPages(count, p.ItemsPerPage)
	if p.CurrentPage > total {
		p.CurrentPage = total
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return before != p.CurrentPage
}
