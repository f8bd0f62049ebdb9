package dto

import "github.com/rutea-api/internal/domain"

// ReviewRequest - body of POST and PUT /api/resenas
type ReviewRequest struct {
	Comment     string       `json:"comentario" validate:"notblank,max=255" example:"Imprescindible"`
	Title       *string      `json:"titulo,omitempty" validate:"omitempty,max=255" example:"Gran visita"`
	Rating      int          `json:"valoracion" validate:"min=1,max=5" example:"5"`
	Likes       int          `json:"likes" validate:"min=0" example:"0"`
	Edited      bool         `json:"editada"`
	PublishedOn *domain.Date `json:"fechaPublicacion,omitempty" swaggertype:"string" example:"2024-05-01"`
	PointID     int64        `json:"puntoId" validate:"required" example:"1"`
	UserID      int64        `json:"usuarioId" validate:"required" example:"1"`
}

// ToDomain defaults fechaPublicacion to today.
func (r *ReviewRequest) ToDomain() *domain.Review {
	rv := &domain.Review{
		Comment: r.Comment,
		Title:   r.Title,
		Rating:  r.Rating,
		Likes:   r.Likes,
		Edited:  r.Edited,
		PointID: r.PointID,
		UserID:  r.UserID,
	}
	if r.PublishedOn != nil {
		rv.PublishedOn = *r.PublishedOn
	} else {
		rv.PublishedOn = domain.Today()
	}
	return rv
}

func ReviewRequestFromDomain(rv *domain.Review) *ReviewRequest {
	published := rv.PublishedOn
	return &ReviewRequest{
		Comment:     rv.Comment,
		Title:       rv.Title,
		Rating:      rv.Rating,
		Likes:       rv.Likes,
		Edited:      rv.Edited,
		PublishedOn: &published,
		PointID:     rv.PointID,
		UserID:      rv.UserID,
	}
}

type ReviewResponse struct {
	ID          int64       `json:"id" example:"1"`
	Comment     string      `json:"comentario" example:"Imprescindible"`
	Title       *string     `json:"titulo"`
	Rating      int         `json:"valoracion" example:"5"`
	Likes       int         `json:"likes" example:"0"`
	Edited      bool        `json:"editada"`
	PublishedOn domain.Date `json:"fechaPublicacion" swaggertype:"string" example:"2024-05-01"`
	PointID     int64       `json:"puntoId" example:"1"`
	UserID      int64       `json:"usuarioId" example:"1"`
}

func NewReviewResponse(rv *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:          rv.ID,
		Comment:     rv.Comment,
		Title:       rv.Title,
		Rating:      rv.Rating,
		Likes:       rv.Likes,
		Edited:      rv.Edited,
		PublishedOn: rv.PublishedOn,
		PointID:     rv.PointID,
		UserID:      rv.UserID,
	}
}

func NewReviewResponses(reviews []*domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, NewReviewResponse(rv))
	}
	return out
}
