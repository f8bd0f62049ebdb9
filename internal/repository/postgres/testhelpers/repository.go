package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// Repositories - every postgres repository over one test database
type Repositories struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Points     repository.PointRepository
	Reviews    repository.ReviewRepository
	Routes     repository.RouteRepository
	Activity   repository.ActivityRepository
}

// NewRepositoriesForTest wires all repositories to the test database
func NewRepositoriesForTest(db *sqlx.DB, logger *zap.Logger) *Repositories {
	pgDB := NewDBForTest(db, logger)
	return &Repositories{
		Users:      postgres.NewUserRepository(pgDB),
		Categories: postgres.NewCategoryRepository(pgDB),
		Points:     postgres.NewPointRepository(pgDB),
		Reviews:    postgres.NewReviewRepository(pgDB),
		Routes:     postgres.NewRouteRepository(pgDB),
		Activity:   postgres.NewActivityRepository(pgDB),
	}
}
