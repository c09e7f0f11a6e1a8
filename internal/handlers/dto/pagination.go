package dto

import (
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// PageQuery contém os parâmetros de paginação da query string
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Pagination converte para a paginação do repositório
func (q PageQuery) Pagination() repositories.Pagination {
	return repositories.Pagination{Page: q.Page, PageSize: q.PageSize}.Normalize()
}

// PageResponse representa uma página de resultados
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse converte uma página do service aplicando convert em cada item
func NewPageResponse[E, T any](page services.Page[E], convert func(E) T) PageResponse[T] {
	items := make([]T, len(page.Items))
	for i, item := range page.Items {
		items[i] = convert(item)
	}

	totalPages := 0
	if page.PageSize > 0 {
		totalPages = int((page.Total + int64(page.PageSize) - 1) / int64(page.PageSize))
	}

	return PageResponse[T]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: totalPages,
	}
}

// ListResponse envolve listas sem paginação
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

// NewListResponse converte uma lista aplicando convert em cada item
func NewListResponse[E, T any](list []E, convert func(E) T) ListResponse[T] {
	items := make([]T, len(list))
	for i, item := range list {
		items[i] = convert(item)
	}
	return ListResponse[T]{Items: items}
}
