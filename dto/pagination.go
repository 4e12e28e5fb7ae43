package dto

// PageRequest carries offset-based pagination parameters. Every listing
// endpoint uses the same scheme; NextPage in ListMeta is the continuation
// indicator for the following page.
type PageRequest struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// Normalized returns the request with defaults applied (page 1, limit 10)
func (p PageRequest) Normalized() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	return p
}

// Offset returns the row offset for the normalized page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ListMeta describes the shape of a returned page
type ListMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	NextPage     *int  `json:"nextPage,omitempty"`
}

// NewListMeta computes page metadata for a page of itemCount items out of
// totalItems matching records. The page request is normalized first, so an
// unnormalized caller cannot cause a division by zero.
func NewListMeta(page PageRequest, itemCount int, totalItems int64) ListMeta {
	page = page.Normalized()
	totalPages := int((totalItems + int64(page.Limit) - 1) / int64(page.Limit))
	meta := ListMeta{
		TotalItems:   totalItems,
		ItemCount:    itemCount,
		ItemsPerPage: page.Limit,
		TotalPages:   totalPages,
		CurrentPage:  page.Page,
	}
	if page.Page < totalPages {
		next := page.Page + 1
		meta.NextPage = &next
	}
	return meta
}
