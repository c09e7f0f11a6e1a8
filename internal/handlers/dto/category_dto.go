package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// CategoryListQuery filtra categorias por escopo
type CategoryListQuery struct {
	Scope           string `form:"scope" binding:"required,oneof=events forum directory"`
	IncludeInactive bool   `form:"include_inactive"`
}

// CreateCategoryRequest representa a requisição para criar uma categoria
type CreateCategoryRequest struct {
	Scope       string `json:"scope" binding:"required,oneof=events forum directory"`
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"max=500"`
	SortOrder   int    `json:"sort_order"`
}

// ToInput converte para o input do service
func (r CreateCategoryRequest) ToInput() services.CategoryInput {
	return services.CategoryInput{Name: r.Name, Description: r.Description, SortOrder: r.SortOrder}
}

// UpdateCategoryRequest representa a requisição para editar uma categoria
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=80"`
	Description string `json:"description" binding:"max=500"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

// ToInput converte para o input do service
func (r UpdateCategoryRequest) ToInput() services.CategoryInput {
	return services.CategoryInput{Name: r.Name, Description: r.Description, SortOrder: r.SortOrder}
}

// CategoryResponse representa uma categoria
type CategoryResponse struct {
	ID          string    `json:"id"`
	Scope       string    `json:"scope"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCategoryResponse converte uma entidade Category
func ToCategoryResponse(c *entities.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Scope:       string(c.Scope),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
