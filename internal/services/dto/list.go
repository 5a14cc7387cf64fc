package dto

import (
	"strconv"

	"triveni_backend/internal/query"
)

// ListQuery - общие параметры списков. По умолчанию page=1, limit=10 (максимум 100),
// sortOrder=desc; неизвестное поле сортировки заменяется сортировкой сущности по умолчанию.
type ListQuery struct {
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

func (q ListQuery) params(filters map[string]string) query.Params {
	return query.Params{
		Search:    q.Search,
		Filters:   filters,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		Limit:     q.Limit,
	}
}

// JobListQuery - GET /jobs. Фильтры status, department, type; "all" или пусто - без фильтра.
type JobListQuery struct {
	ListQuery
	Status     string `form:"status"`
	Department string `form:"department"`
	Type       string `form:"type"`
}

func (q JobListQuery) ToParams() query.Params {
	return q.params(map[string]string{
		"status":     q.Status,
		"department": q.Department,
		"type":       q.Type,
	})
}

// ApplicationListQuery - GET /applications.
type ApplicationListQuery struct {
	ListQuery
	Status   string `form:"status"`
	Position string `form:"position"`
	JobID    string `form:"jobId"`
}

func (q ApplicationListQuery) ToParams() query.Params {
	return q.params(map[string]string{
		"status":   q.Status,
		"position": q.Position,
		"jobId":    q.JobID,
	})
}

// BlogListQuery - GET /blogs. Сортировка по умолчанию publishedAt desc.
// Admin=true учитывается только для администратора: тогда видны все статусы.
type BlogListQuery struct {
	ListQuery
	Category string `form:"category"`
	Status   string `form:"status"`
	Featured string `form:"featured"`
	Admin    bool   `form:"admin"`
}

func (q BlogListQuery) ToParams() query.Params {
	return q.params(map[string]string{
		"category": q.Category,
		"status":   q.Status,
	})
}

// FeaturedFilter - nil, если параметр featured не задан или не разобран.
func (q BlogListQuery) FeaturedFilter() *bool {
	if q.Featured == "" {
		return nil
	}
	v, err := strconv.ParseBool(q.Featured)
	if err != nil {
		return nil
	}
	return &v
}

// BlogSearchQuery - GET /blogs/search. q обязателен.
type BlogSearchQuery struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

func (q BlogSearchQuery) ToParams() query.Params {
	return query.Params{
		Search:  q.Q,
		Filters: map[string]string{"category": q.Category},
		Page:    q.Page,
		Limit:   q.Limit,
	}
}

// PageQuery - только страница, например для статей категории.
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// LimitQuery - для коротких подборок (popular, related).
type LimitQuery struct {
	Limit int `form:"limit"`
}

// ContactListQuery - GET /contact.
type ContactListQuery struct {
	ListQuery
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	AssignedTo string `form:"assignedTo"`
}

func (q ContactListQuery) ToParams() query.Params {
	return q.params(map[string]string{
		"status":     q.Status,
		"priority":   q.Priority,
		"assignedTo": q.AssignedTo,
	})
}

// ListResult - страница данных и метаданные пагинации.
type ListResult[T any] struct {
	Items      []T
	Pagination query.Pagination
}
