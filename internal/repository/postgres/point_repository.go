package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

var pointColumns = []string{
	"p.id", "p.nombre", "p.latitud", "p.longitud", "p.puntuacion_media",
	"p.abierto_actualmente", "p.fecha_creacion", "p.categoria_id",
	"c.nombre AS categoria_nombre",
}

type pointRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPointRepository(db *DB) repository.PointRepository {
	return &pointRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *pointRepository) selectPoints() sq.SelectBuilder {
	return psql.Select(pointColumns...).
		From("puntos_interes p").
		Join("categorias c ON c.id = p.categoria_id")
}

func (r *pointRepository) GetByID(ctx context.Context, id int64) (point *domain.PointOfInterest, err error) {
	ctx, span := startSpan(ctx, "PointRepository.GetByID", "SELECT", "puntos_interes", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	query, args, err := r.selectPoints().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var p domain.PointOfInterest
	if err = r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrPointNotFound, "PointRepository.GetByID")
	}
	return &p, nil
}

func (r *pointRepository) List(ctx context.Context, filter domain.PointFilter) (points []*domain.PointOfInterest, err error) {
	ctx, span := startSpan(ctx, "PointRepository.List", "SELECT", "puntos_interes")
	defer func() { endSpan(span, err) }()

	query, args, err := where(r.selectPoints(), pointPredicates(filter)).
		OrderBy("p.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	points = []*domain.PointOfInterest{}
	if err = r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrPointNotFound, "PointRepository.List")
	}
	span.SetAttributes(attribute.Int("db.result.count", len(points)))
	return points, nil
}

func (r *pointRepository) ExistingIDs(ctx context.Context, ids []int64) (existing []int64, err error) {
	ctx, span := startSpan(ctx, "PointRepository.ExistingIDs", "SELECT", "puntos_interes", attribute.Int("db.ids.count", len(ids)))
	defer func() { endSpan(span, err) }()

	existing = []int64{}
	if len(ids) == 0 {
		return existing, nil
	}
	query := `SELECT id FROM puntos_interes WHERE id = ANY($1)`
	if err = r.db.SelectContext(ctx, &existing, query, pq.Array(ids)); err != nil {
		return nil, mapError(r.logger, err, errors.ErrPointNotFound, "PointRepository.ExistingIDs")
	}
	return existing, nil
}

func (r *pointRepository) Create(ctx context.Context, point *domain.PointOfInterest) (err error) {
	ctx, span := startSpan(ctx, "PointRepository.Create", "INSERT", "puntos_interes")
	defer func() { endSpan(span, err) }()

	query := `
		WITH ins AS (
			INSERT INTO puntos_interes
				(nombre, latitud, longitud, puntuacion_media, abierto_actualmente, fecha_creacion, categoria_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, categoria_id
		)
		SELECT ins.id, c.nombre FROM ins JOIN categorias c ON c.id = ins.categoria_id
	`
	err = r.db.QueryRowxContext(ctx, query,
		point.Name, point.Latitude, point.Longitude, point.AverageRating,
		point.OpenNow, point.CreatedAt, point.CategoryID,
	).Scan(&point.ID, &point.CategoryName)
	return mapError(r.logger, err, errors.ErrCategoryNotFound, "PointRepository.Create")
}

func (r *pointRepository) Update(ctx context.Context, point *domain.PointOfInterest) (err error) {
	ctx, span := startSpan(ctx, "PointRepository.Update", "UPDATE", "puntos_interes", attribute.Int64("db.record.id", point.ID))
	defer func() { endSpan(span, err) }()

	query := `
		WITH upd AS (
			UPDATE puntos_interes
			SET nombre = $2, latitud = $3, longitud = $4, puntuacion_media = $5,
				abierto_actualmente = $6, fecha_creacion = $7, categoria_id = $8
			WHERE id = $1
			RETURNING categoria_id
		)
		SELECT c.nombre FROM upd JOIN categorias c ON c.id = upd.categoria_id
	`
	err = r.db.QueryRowxContext(ctx, query,
		point.ID, point.Name, point.Latitude, point.Longitude, point.AverageRating,
		point.OpenNow, point.CreatedAt, point.CategoryID,
	).Scan(&point.CategoryName)
	return mapError(r.logger, err, errors.ErrPointNotFound, "PointRepository.Update")
}

func (r *pointRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "PointRepository.Delete", "DELETE", "puntos_interes", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM puntos_interes WHERE id = $1`, id)
	if err != nil {
		return mapError(r.logger, err, errors.ErrPointNotFound, "PointRepository.Delete")
	}
	return r.db.expectAffected(res, errors.ErrPointNotFound)
}
