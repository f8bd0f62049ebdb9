package postgres

import (
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/pkg/errors"
)

// PostgreSQL error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// uniqueFields maps unique constraints to the JSON field they protect.
var uniqueFields = map[string]string{
	"usuarios_email_key":    "email",
	"usuarios_username_key": "username",
}

// mapError converts a driver error into an application error. notFound is
// returned for sql.ErrNoRows. op names the call as "<Repo>.<Method>"; a
// foreign key violation during Delete means the row is still referenced.
func mapError(logger *zap.Logger, err error, notFound *errors.AppError, op string) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	if appErr, ok := errors.As(err); ok {
		return appErr
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			field, ok := uniqueFields[pgErr.ConstraintName]
			if !ok {
				field = pgErr.ColumnName
			}
			if field == "" {
				field = "id"
			}
			return errors.NewValidationError(map[string]string{field: field + " already in use"})
		case pgForeignKeyViolation:
			if strings.HasSuffix(op, ".Delete") {
				if pgErr.ConstraintName == "puntos_interes_categoria_id_fkey" {
					return errors.ErrConflict.WithMessage("Category still has points of interest")
				}
				return errors.ErrConflict
			}
			return notFoundForConstraint(pgErr.ConstraintName)
		case pgCheckViolation:
			return errors.ErrValidation.WithMessage("value out of range: " + pgErr.ConstraintName)
		}
	}

	logger.Error("Database error", zap.String("op", op), zap.Error(err))
	return errors.ErrDatabaseError
}

// notFoundForConstraint maps an insert/update FK violation to the not-found
// error of the referenced entity. It is the fallback when a referenced row
// disappears between resolution and write.
func notFoundForConstraint(constraint string) error {
	switch constraint {
	case "puntos_interes_categoria_id_fkey":
		return errors.ErrCategoryNotFound
	case "resenas_punto_id_fkey", "ruta_puntos_punto_id_fkey":
		return errors.ErrPointNotFound
	case "resenas_usuario_id_fkey", "rutas_usuario_id_fkey":
		return errors.ErrUserNotFound
	case "ruta_puntos_ruta_id_fkey":
		return errors.ErrRouteNotFound
	}
	return errors.ErrConflict.WithMessage("referenced entity violates constraint " + constraint)
}
