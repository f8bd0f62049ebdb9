package postgres

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

const reviewColumns = "id, comentario, titulo, valoracion, likes, editada, fecha_publicacion, punto_id, usuario_id"

type reviewRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (review *domain.Review, err error) {
	ctx, span := startSpan(ctx, "ReviewRepository.GetByID", "SELECT", "resenas", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	var rv domain.Review
	query := `SELECT ` + reviewColumns + ` FROM resenas WHERE id = $1`
	if err = r.db.GetContext(ctx, &rv, query, id); err != nil {
		return nil, mapError(r.logger, err, errors.ErrReviewNotFound, "ReviewRepository.GetByID")
	}
	return &rv, nil
}

func (r *reviewRepository) List(ctx context.Context, filter domain.ReviewFilter) (reviews []*domain.Review, err error) {
	ctx, span := startSpan(ctx, "ReviewRepository.List", "SELECT", "resenas")
	defer func() { endSpan(span, err) }()

	query, args, err := where(psql.Select(reviewColumns).From("resenas"), reviewPredicates(filter)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	reviews = []*domain.Review{}
	if err = r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrReviewNotFound, "ReviewRepository.List")
	}
	span.SetAttributes(attribute.Int("db.result.count", len(reviews)))
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, span := startSpan(ctx, "ReviewRepository.Create", "INSERT", "resenas")
	defer func() { endSpan(span, err) }()

	query := `
		INSERT INTO resenas (comentario, titulo, valoracion, likes, editada, fecha_publicacion, punto_id, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = r.db.QueryRowxContext(ctx, query,
		review.Comment, review.Title, review.Rating, review.Likes,
		review.Edited, review.PublishedOn, review.PointID, review.UserID,
	).Scan(&review.ID)
	return mapError(r.logger, err, errors.ErrReviewNotFound, "ReviewRepository.Create")
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) (err error) {
	ctx, span := startSpan(ctx, "ReviewRepository.Update", "UPDATE", "resenas", attribute.Int64("db.record.id", review.ID))
	defer func() { endSpan(span, err) }()

	query := `
		UPDATE resenas
		SET comentario = $2, titulo = $3, valoracion = $4, likes = $5,
			editada = $6, fecha_publicacion = $7, punto_id = $8, usuario_id = $9
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		review.ID, review.Comment, review.Title, review.Rating, review.Likes,
		review.Edited, review.PublishedOn, review.PointID, review.UserID,
	)
	if err != nil {
		return mapError(r.logger, err, errors.ErrReviewNotFound, "ReviewRepository.Update")
	}
	return r.db.expectAffected(res, errors.ErrReviewNotFound)
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "ReviewRepository.Delete", "DELETE", "resenas", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM resenas WHERE id = $1`, id)
	if err != nil {
		return mapError(r.logger, err, errors.ErrReviewNotFound, "ReviewRepository.Delete")
	}
	return r.db.expectAffected(res, errors.ErrReviewNotFound)
}
