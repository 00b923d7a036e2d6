package pagination

import "math"

// Pagination is the page metadata returned alongside every list response.
// PreviousPage and NextPage are nil exactly at the first and last page.
type Pagination struct {
	TotalCount   int64 `json:"totalCount"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	PreviousPage *int  `json:"previousPage"`
	NextPage     *int  `json:"nextPage"`
}

// New computes page metadata from a total count. The count must come from
// the same filter as the paged read, an unfiltered count here is a defect.
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	p := &Pagination{
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}

	if prev := page - 1; prev > 0 {
		p.PreviousPage = &prev
	}
	if next := page + 1; next <= totalPages {
		p.NextPage = &next
	}

	return p
}
