package catalog

// PageInfo is the outcome of Paginate.
type PageInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Offset returns the zero-based index of the first item on the page.
func (p PageInfo) Offset(limit int) int {
	if limit < 1 {
		limit = 1
	}
	if p.Page < 1 {
		return 0
	}
	return pageOffset(p.Page, limit)
}

// Paginate computes the page count for total items split into pages of
// limit items and clamps requested into [1, TotalPages]. TotalPages is at
// least 1 so an empty result still has a page to show. A limit below 1 is
// treated as 1.
func Paginate(total, limit, requested int) PageInfo {
	if limit < 1 {
		limit = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	page := requested
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	return PageInfo{Page: page, TotalPages: totalPages}
}

// ResultPage is a bounded page of results as presented to the user.
type ResultPage struct {
	Items      []*Entry `json:"items"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
}
