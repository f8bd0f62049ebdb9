package dto

import "github.com/rutea-api/internal/domain"

// CategoryRequest - body of POST and PUT /api/categorias
type CategoryRequest struct {
	Name        string  `json:"nombre" validate:"notblank,max=255" example:"Museos"`
	Description *string `json:"descripcion,omitempty" validate:"omitempty,max=500" example:"Arte e historia"`
	IconURL     *string `json:"iconoUrl,omitempty" validate:"omitempty,max=255" example:"https://cdn.example.com/museo.svg"`
	Priority    int     `json:"ordenPrioridad" validate:"min=0" example:"1"`
	Active      bool    `json:"activa"`
	AverageCost float32 `json:"costePromedio" validate:"min=0" example:"12.5"`
}

func (r *CategoryRequest) ToDomain() *domain.Category {
	return &domain.Category{
		Name:        r.Name,
		Description: r.Description,
		IconURL:     r.IconURL,
		Priority:    r.Priority,
		Active:      r.Active,
		AverageCost: r.AverageCost,
	}
}

func CategoryRequestFromDomain(c *domain.Category) *CategoryRequest {
	return &CategoryRequest{
		Name:        c.Name,
		Description: c.Description,
		IconURL:     c.IconURL,
		Priority:    c.Priority,
		Active:      c.Active,
		AverageCost: c.AverageCost,
	}
}

type CategoryResponse struct {
	ID          int64   `json:"id" example:"1"`
	Name        string  `json:"nombre" example:"Museos"`
	Description *string `json:"descripcion"`
	IconURL     *string `json:"iconoUrl"`
	Priority    int     `json:"ordenPrioridad" example:"1"`
	Active      bool    `json:"activa"`
	AverageCost float32 `json:"costePromedio" example:"12.5"`
}

func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IconURL:     c.IconURL,
		Priority:    c.Priority,
		Active:      c.Active,
		AverageCost: c.AverageCost,
	}
}

func NewCategoryResponses(categories []*domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}
