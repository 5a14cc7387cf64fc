package query

// Pagination - метаданные страницы в ответе.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination считает pages = ceil(total/limit) и флаги соседних страниц.
func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page <= 0 {
		page = DefaultPage
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		Current: page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// ForQuery - пагинация для уже построенного запроса.
func ForQuery(q Query, total int64) Pagination {
	return NewPagination(q.Page, q.Limit, total)
}
