package postgres

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
)

const userColumns = "id, email, username, password, nivel_experiencia, es_premium, fecha_registro"

type userRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db,
		logger: db.logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (user *domain.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.GetByID", "SELECT", "usuarios", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	var u domain.User
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1`
	if err = r.db.GetContext(ctx, &u, query, id); err != nil {
		return nil, mapError(r.logger, err, errors.ErrUserNotFound, "UserRepository.GetByID")
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter) (users []*domain.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.List", "SELECT", "usuarios")
	defer func() { endSpan(span, err) }()

	query, args, err := where(psql.Select(userColumns).From("usuarios"), userPredicates(filter)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	users = []*domain.User{}
	if err = r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, mapError(r.logger, err, errors.ErrUserNotFound, "UserRepository.List")
	}
	span.SetAttributes(attribute.Int("db.result.count", len(users)))
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (err error) {
	ctx, span := startSpan(ctx, "UserRepository.Create", "INSERT", "usuarios")
	defer func() { endSpan(span, err) }()

	query := `
		INSERT INTO usuarios (email, username, password, nivel_experiencia, es_premium, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = r.db.QueryRowxContext(ctx, query,
		user.Email, user.Username, user.PasswordHash,
		user.ExperienceLevel, user.Premium, user.RegisteredAt,
	).Scan(&user.ID)
	return mapError(r.logger, err, errors.ErrUserNotFound, "UserRepository.Create")
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) (err error) {
	ctx, span := startSpan(ctx, "UserRepository.Update", "UPDATE", "usuarios", attribute.Int64("db.record.id", user.ID))
	defer func() { endSpan(span, err) }()

	query := `
		UPDATE usuarios
		SET email = $2, username = $3, password = $4,
			nivel_experiencia = $5, es_premium = $6, fecha_registro = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash,
		user.ExperienceLevel, user.Premium, user.RegisteredAt,
	)
	if err != nil {
		return mapError(r.logger, err, errors.ErrUserNotFound, "UserRepository.Update")
	}
	return r.db.expectAffected(res, errors.ErrUserNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "UserRepository.Delete", "DELETE", "usuarios", attribute.Int64("db.record.id", id))
	defer func() { endSpan(span, err) }()

	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return mapError(r.logger, err, errors.ErrUserNotFound, "UserRepository.Delete")
	}
	return r.db.expectAffected(res, errors.ErrUserNotFound)
}
