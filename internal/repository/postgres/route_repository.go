package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

const routeColumns = "id, titulo, dificultad, distancia_km, duracion_minutos, publica, fecha_realizacion, usuario_id"

type routeRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewRouteRepository(db *DB) repository.RouteRepository {
	return &routeRepository{
		db:     db,
		logger: db.logger,
	}
}

type routePoint struct {
	RouteID int64 `db:"ruta_id"`
	PointID int64 `db:"punto_id"`
}

func (r *routeRepository) GetByID(ctx context.Context, id int64) (route *domain.Route, err error) {
	ctx, span := startSpan(ctx, "RouteRepository.GetByID", "SELECT", "rutas", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	var rt domain.Route
	query := `SELECT ` + routeColumns + ` FROM rutas WHERE id = $1`
	if err = r.db.GetContext(ctx, &rt, query, id); err != nil {
		return nil, mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.GetByID")
	}

	rt.PointIDs = []int64{}
	pointsQuery := `SELECT punto_id FROM ruta_puntos WHERE ruta_id = $1 ORDER BY posicion`
	if err = r.db.SelectContext(ctx, &rt.PointIDs, pointsQuery, id); err != nil {
		return nil, mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.GetByID")
	}
	return &rt, nil
}

func (r *routeRepository) List(ctx context.Context, filter domain.RouteFilter) (routes []*domain.Route, err error) {
	ctx, span := startSpan(ctx, "RouteRepository.List", "SELECT", "rutas")
	defer func() { endSpan(span, err) }()

	query, args, err := where(psql.Select(routeColumns).From("rutas"), routePredicates(filter)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	routes = []*domain.Route{}
	if err = r.db.SelectContext(ctx, &routes, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.List")
	}
	span.SetAttributes(attribute.Int("db.result.count", len(routes)))
	if len(routes) == 0 {
		return routes, nil
	}

	// Point lists for every route in one query
	ids := make([]int64, len(routes))
	byID := make(map[int64]*domain.Route, len(routes))
	for i, rt := range routes {
		ids[i] = rt.ID
		rt.PointIDs = []int64{}
		byID[rt.ID] = rt
	}

	var links []routePoint
	linksQuery := `
		SELECT ruta_id, punto_id FROM ruta_puntos
		WHERE ruta_id = ANY($1)
		ORDER BY ruta_id, posicion
	`
	if err = r.db.SelectContext(ctx, &links, linksQuery, pq.Array(ids)); err != nil {
		return nil, mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.List")
	}
	for _, l := range links {
		if rt, ok := byID[l.RouteID]; ok {
			rt.PointIDs = append(rt.PointIDs, l.PointID)
		}
	}
	return routes, nil
}

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) (err error) {
	ctx, span := startSpan(ctx, "RouteRepository.Create", "INSERT", "rutas", attribute.Int("db.route.points", len(route.PointIDs)))
	defer func() { endSpan(span, err) }()

	err = r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO rutas (titulo, dificultad, distancia_km, duracion_minutos, publica, fecha_realizacion, usuario_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		if err := tx.QueryRowxContext(ctx, query,
			route.Title, route.Difficulty, route.DistanceKm, route.DurationMinutes,
			route.Public, route.CompletedOn, route.UserID,
		).Scan(&route.ID); err != nil {
			return err
		}
		return insertRoutePoints(ctx, tx, route.ID, route.PointIDs)
	})
	return mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.Create")
}

func (r *routeRepository) Update(ctx context.Context, route *domain.Route) (err error) {
	ctx, span := startSpan(ctx, "RouteRepository.Update", "UPDATE", "rutas",
		attribute.Int64("db.record.id", route.ID),
		attribute.Int("db.route.points", len(route.PointIDs)),
	)
	defer func() { endSpan(span, err) }()

	err = r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE rutas
			SET titulo = $2, dificultad = $3, distancia_km = $4, duracion_minutos = $5,
				publica = $6, fecha_realizacion = $7, usuario_id = $8
			WHERE id = $1
		`
		res, err := tx.ExecContext(ctx, query,
			route.ID, route.Title, route.Difficulty, route.DistanceKm,
			route.DurationMinutes, route.Public, route.CompletedOn, route.UserID,
		)
		if err != nil {
			return err
		}
		if err := r.db.expectAffected(res, errors.ErrRouteNotFound); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM ruta_puntos WHERE ruta_id = $1`, route.ID); err != nil {
			return err
		}
		return insertRoutePoints(ctx, tx, route.ID, route.PointIDs)
	})
	return mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.Update")
}

func (r *routeRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "RouteRepository.Delete", "DELETE", "rutas", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM rutas WHERE id = $1`, id)
	if err != nil {
		return mapError(r.logger, err, errors.ErrRouteNotFound, "RouteRepository.Delete")
	}
	return r.db.expectAffected(res, errors.ErrRouteNotFound)
}

// insertRoutePoints writes the ordered point list in a single statement.
func insertRoutePoints(ctx context.Context, tx *sqlx.Tx, routeID int64, pointIDs []int64) error {
	if len(pointIDs) == 0 {
		return nil
	}
	b := psql.Insert("ruta_puntos").Columns("ruta_id", "punto_id", "posicion")
	for pos, pointID := range pointIDs {
		b = b.Values(routeID, pointID, pos)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
