package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

const activityColumns = "id, event_id, entidad, entidad_id, accion, fecha, registrada"

const insertActivity = `
	INSERT INTO actividad (event_id, entidad, entidad_id, accion, fecha)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (event_id) DO NOTHING
`

type activityRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewActivityRepository(db *DB) repository.ActivityRepository {
	return &activityRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *activityRepository) RecordBatch(ctx context.Context, activities []*domain.Activity) (inserted int, err error) {
	ctx, span := startSpan(ctx, "ActivityRepository.RecordBatch", "INSERT", "actividad",
		attribute.Int("db.batch.size", len(activities)),
	)
	defer func() { endSpan(span, err) }()

	if len(activities) == 0 {
		return 0, nil
	}

	err = r.db.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, insertActivity)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, a := range activities {
			res, err := stmt.ExecContext(ctx, a.EventID, a.Entity, a.EntityID, a.Action, a.OccurredAt)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, mapError(r.logger, err, errors.ErrResourceNotFound, "ActivityRepository.RecordBatch")
	}
	span.SetAttributes(attribute.Int("db.batch.inserted", inserted))
	return inserted, nil
}

func (r *activityRepository) List(ctx context.Context, filter domain.ActivityFilter) (activities []*domain.Activity, err error) {
	ctx, span := startSpan(ctx, "ActivityRepository.List", "SELECT", "actividad")
	defer func() { endSpan(span, err) }()

	query, args, err := where(psql.Select(activityColumns).From("actividad"), activityPredicates(filter)).
		OrderBy("fecha DESC", "id DESC").
		Limit(uint64(filter.NormalizedLimit())).
		ToSql()
	if err != nil {
		return nil, err
	}

	activities = []*domain.Activity{}
	if err = r.db.SelectContext(ctx, &activities, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrResourceNotFound, "ActivityRepository.List")
	}
	return activities, nil
}
