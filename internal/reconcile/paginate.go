package reconcile

// MaxVisiblePages is the width of the page-number window.
const MaxVisiblePages = 6

// Page is the pagination state for a list of TotalItems items.
// Start and End are slice offsets of the current page.
type Page struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Start      int   `json:"start"`
	End        int   `json:"end"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
	Window     []int `json:"window,omitempty"`
}

// Paginate clamps page into range and computes offsets and the visible page
// window. The window is empty when everything fits on one page.
func Paginate(totalItems, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalItems = max(0, totalItems)
	totalPages := (totalItems + pageSize - 1) / pageSize

	page = min(page, max(1, totalPages))
	page = max(page, 1)

	p := Page{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Start:      min((page-1)*pageSize, totalItems),
		End:        min(page*pageSize, totalItems),
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}

	if totalPages <= 1 {
		return p
	}

	start, end := 1, min(totalPages, MaxVisiblePages)
	if page > 3 && totalPages > MaxVisiblePages {
		start = max(1, page-2)
		end = min(totalPages, start+MaxVisiblePages-1)
		if end == totalPages {
			start = max(1, end-MaxVisiblePages+1)
		}
	}
	for i := start; i <= end; i++ {
		p.Window = append(p.Window, i)
	}
	return p
}

// Slice returns the items of the current page.
func Slice[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return []T{}
	}
	return items[p.Start:min(p.End, len(items))]
}
