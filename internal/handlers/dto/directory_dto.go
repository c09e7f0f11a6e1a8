package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// BusinessRequest representa a requisição para cadastrar um negócio
type BusinessRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Category    string `json:"category" binding:"required,max=80"`
	Description string `json:"description" binding:"max=2000"`
	Address     string `json:"address" binding:"max=200"`
	Phone       string `json:"phone" binding:"max=40"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website" binding:"omitempty,url"`
	Hours       string `json:"hours" binding:"max=200"`
	IsFeatured  bool   `json:"is_featured"`
}

// ToInput converte para o input do service
func (r BusinessRequest) ToInput() services.BusinessInput {
	return services.BusinessInput{
		Name:        r.Name,
		Category:    r.Category,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		Hours:       r.Hours,
		IsFeatured:  r.IsFeatured,
	}
}

// UpdateBusinessRequest representa a edição de um negócio
type UpdateBusinessRequest struct {
	BusinessRequest
	IsActive *bool `json:"is_active"`
}

// DirectoryListQuery filtra o diretório
type DirectoryListQuery struct {
	Category string `form:"category" binding:"omitempty,max=80"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	PageQuery
}

// ToQuery converte para a consulta do service
func (q DirectoryListQuery) ToQuery() services.DirectoryQuery {
	return services.DirectoryQuery{Category: q.Category, Search: q.Search, Pagination: q.Pagination()}
}

// BusinessResponse representa um negócio do diretório
type BusinessResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Website     string     `json:"website,omitempty"`
	Hours       string     `json:"hours,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsFeatured  bool       `json:"is_featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// ToBusinessResponse converte uma entidade Business
func ToBusinessResponse(b *entities.Business) BusinessResponse {
	return BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Category:    b.Category,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		Website:     b.Website,
		Hours:       b.Hours,
		IsActive:    b.IsActive,
		IsFeatured:  b.IsFeatured,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		DeletedAt:   b.DeletedAt,
	}
}
