package postgres

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

const categoryColumns = "id, nombre, descripcion, icono_url, orden_prioridad, activa, coste_promedio"

type categoryRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewCategoryRepository(db *DB) repository.CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (category *domain.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.GetByID", "SELECT", "categorias", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	var c domain.Category
	query := `SELECT ` + categoryColumns + ` FROM categorias WHERE id = $1`
	if err = r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, mapError(r.logger, err, errors.ErrCategoryNotFound, "CategoryRepository.GetByID")
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, filter domain.CategoryFilter) (categories []*domain.Category, err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.List", "SELECT", "categorias")
	defer func() { endSpan(span, err) }()

	query, args, err := where(psql.Select(categoryColumns).From("categorias"), categoryPredicates(filter)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	categories = []*domain.Category{}
	if err = r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrCategoryNotFound, "CategoryRepository.List")
	}
	span.SetAttributes(attribute.Int("db.result.count", len(categories)))
	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.Create", "INSERT", "categorias")
	defer func() { endSpan(span, err) }()

	query := `
		INSERT INTO categorias (nombre, descripcion, icono_url, orden_prioridad, activa, coste_promedio)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.db.QueryRowxContext(ctx, query,
		category.Name, category.Description, category.IconURL,
		category.Priority, category.Active, category.AverageCost,
	).Scan(&category.ID)
	return mapError(r.logger, err, errors.ErrCategoryNotFound, "CategoryRepository.Create")
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) (err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.Update", "UPDATE", "categorias", attribute.Int64("db.record.id", category.ID))
	defer func() { endSpan(span, err) }()

	query := `
		UPDATE categorias
		SET nombre = $2, descripcion = $3, icono_url = $4,
			orden_prioridad = $5, activa = $6, coste_promedio = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		category.ID, category.Name, category.Description, category.IconURL,
		category.Priority, category.Active, category.AverageCost,
	)
	if err != nil {
		return mapError(r.logger, err, errors.ErrCategoryNotFound, "CategoryRepository.Update")
	}
	return r.db.expectAffected(res, errors.ErrCategoryNotFound)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "CategoryRepository.Delete", "DELETE", "categorias", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return mapError(r.logger, err, errors.ErrCategoryNotFound, "CategoryRepository.Delete")
	}
	return r.db.expectAffected(res, errors.ErrCategoryNotFound)
}
