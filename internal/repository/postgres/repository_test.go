package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/errors"
	"github.com/rutea-api/internal/repository/postgres/testhelpers"
)

// RepositorySuite tests the postgres repositories with a real database
type RepositorySuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repos  *testhelpers.Repositories
	ctx    context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

// SetupSuite runs once before all tests
func (s *RepositorySuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.Require().NoError(testhelpers.ApplyMigrations(s.testDB.DB.DB))
	s.repos = testhelpers.NewRepositoriesForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite runs once after all tests
func (s *RepositorySuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

// SetupTest runs before each test
func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *RepositorySuite) newUser(email, username string) *domain.User {
	u := &domain.User{
		Email:           email,
		Username:        username,
		PasswordHash:    "$2a$10$hash",
		ExperienceLevel: 2,
		Premium:         true,
		RegisteredAt:    domain.NewDate(2024, 3, 1),
	}
	s.Require().NoError(s.repos.Users.Create(s.ctx, u))
	return u
}

func (s *RepositorySuite) newCategory(name string) *domain.Category {
	c := &domain.Category{Name: name, Priority: 1, Active: true, AverageCost: 12.5}
	s.Require().NoError(s.repos.Categories.Create(s.ctx, c))
	return c
}

func (s *RepositorySuite) newPoint(name string, categoryID int64) *domain.PointOfInterest {
	p := &domain.PointOfInterest{
		Name:          name,
		Latitude:      40.4168,
		Longitude:     -3.7038,
		AverageRating: 4.5,
		OpenNow:       true,
		CreatedAt:     domain.Now(),
		CategoryID:    categoryID,
	}
	s.Require().NoError(s.repos.Points.Create(s.ctx, p))
	return p
}

// ============================================================================
// Users
// ============================================================================

func (s *RepositorySuite) TestUser_CreateAndGet() {
	u := s.newUser("ana@example.com", "ana")
	s.NotZero(u.ID)

	got, err := s.repos.Users.GetByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("ana@example.com", got.Email)
	s.Equal("2024-03-01", got.RegisteredAt.String())
	s.True(got.Premium)
}

func (s *RepositorySuite) TestUser_GetByID_NotFound() {
	got, err := s.repos.Users.GetByID(s.ctx, 99999)
	s.Nil(got)
	s.ErrorIs(err, errors.ErrUserNotFound)
}

func (s *RepositorySuite) TestUser_DuplicateEmail() {
	s.newUser("dup@example.com", "one")

	err := s.repos.Users.Create(s.ctx, &domain.User{
		Email: "dup@example.com", Username: "two", PasswordHash: "x",
		RegisteredAt: domain.Today(),
	})
	s.Require().ErrorIs(err, errors.ErrValidation)
	appErr, ok := errors.As(err)
	s.Require().True(ok)
	s.Equal("email already in use", appErr.Fields["email"])
}

func (s *RepositorySuite) TestUser_ListFilters() {
	s.newUser("a@example.com", "Marta")
	s.newUser("b@example.com", "martin")
	s.newUser("c@example.com", "luis")

	name := "MART"
	users, err := s.repos.Users.List(s.ctx, domain.UserFilter{Username: &name})
	s.Require().NoError(err)
	s.Len(users, 2)
	s.Equal("Marta", users[0].Username)

	all, err := s.repos.Users.List(s.ctx, domain.UserFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositorySuite) TestUser_DeleteCascades() {
	u := s.newUser("del@example.com", "del")
	c := s.newCategory("Museos")
	p := s.newPoint("Prado", c.ID)

	review := &domain.Review{Comment: "Great", Rating: 5, PublishedOn: domain.Today(), PointID: p.ID, UserID: u.ID}
	s.Require().NoError(s.repos.Reviews.Create(s.ctx, review))

	s.Require().NoError(s.repos.Users.Delete(s.ctx, u.ID))

	_, err := s.repos.Reviews.GetByID(s.ctx, review.ID)
	s.ErrorIs(err, errors.ErrReviewNotFound)
	s.ErrorIs(s.repos.Users.Delete(s.ctx, u.ID), errors.ErrUserNotFound)
}

// ============================================================================
// Categories and points
// ============================================================================

func (s *RepositorySuite) TestCategory_UpdateMissing() {
	err := s.repos.Categories.Update(s.ctx, &domain.Category{ID: 424242, Name: "x"})
	s.ErrorIs(err, errors.ErrCategoryNotFound)
}

func (s *RepositorySuite) TestCategory_DeleteWithPointsIsConflict() {
	c := s.newCategory("Playas")
	s.newPoint("La Concha", c.ID)

	err := s.repos.Categories.Delete(s.ctx, c.ID)
	s.ErrorIs(err, errors.ErrConflict)

	_, err = s.repos.Categories.GetByID(s.ctx, c.ID)
	s.NoError(err)
}

func (s *RepositorySuite) TestPoint_CarriesCategoryName() {
	c := s.newCategory("Miradores")
	p := s.newPoint("San Nicolás", c.ID)
	s.Equal("Miradores", p.CategoryName)

	got, err := s.repos.Points.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Miradores", got.CategoryName)
	s.Equal(c.ID, got.CategoryID)
}

func (s *RepositorySuite) TestPoint_CreateWithMissingCategory() {
	p := &domain.PointOfInterest{Name: "Nowhere", CreatedAt: domain.Now(), CategoryID: 9999}
	err := s.repos.Points.Create(s.ctx, p)
	s.ErrorIs(err, errors.ErrCategoryNotFound)
}

func (s *RepositorySuite) TestPoint_ListByRating() {
	c := s.newCategory("Parques")
	s.newPoint("Retiro", c.ID)

	rating := 4.5
	points, err := s.repos.Points.List(s.ctx, domain.PointFilter{AverageRating: &rating})
	s.Require().NoError(err)
	s.Len(points, 1)

	other := 4.4
	points, err = s.repos.Points.List(s.ctx, domain.PointFilter{AverageRating: &other})
	s.Require().NoError(err)
	s.Empty(points)
}

func (s *RepositorySuite) TestPoint_ExistingIDs() {
	c := s.newCategory("Templos")
	p1 := s.newPoint("Templo de Debod", c.ID)
	p2 := s.newPoint("Catedral", c.ID)

	ids, err := s.repos.Points.ExistingIDs(s.ctx, []int64{p1.ID, 777777, p2.ID})
	s.Require().NoError(err)
	s.ElementsMatch([]int64{p1.ID, p2.ID}, ids)
}

// ============================================================================
// Routes
// ============================================================================

func (s *RepositorySuite) TestRoute_PointOrderIsPreserved() {
	u := s.newUser("r@example.com", "rutero")
	c := s.newCategory("Monumentos")
	p1 := s.newPoint("Uno", c.ID)
	p2 := s.newPoint("Dos", c.ID)

	route := &domain.Route{
		Title:       "Centro",
		DistanceKm:  3.2,
		Public:      true,
		CompletedOn: domain.NewDate(2024, 6, 10),
		UserID:      u.ID,
		PointIDs:    []int64{p2.ID, p1.ID, p2.ID},
	}
	s.Require().NoError(s.repos.Routes.Create(s.ctx, route))

	got, err := s.repos.Routes.GetByID(s.ctx, route.ID)
	s.Require().NoError(err)
	s.Equal([]int64{p2.ID, p1.ID, p2.ID}, got.PointIDs)

	got.PointIDs = []int64{p1.ID}
	s.Require().NoError(s.repos.Routes.Update(s.ctx, got))

	routes, err := s.repos.Routes.List(s.ctx, domain.RouteFilter{})
	s.Require().NoError(err)
	s.Require().Len(routes, 1)
	s.Equal([]int64{p1.ID}, routes[0].PointIDs)
}

func (s *RepositorySuite) TestRoute_CreateWithMissingPointRollsBack() {
	u := s.newUser("rb@example.com", "rollback")

	route := &domain.Route{Title: "Rota", CompletedOn: domain.Today(), UserID: u.ID, PointIDs: []int64{123456}}
	err := s.repos.Routes.Create(s.ctx, route)
	s.ErrorIs(err, errors.ErrPointNotFound)

	routes, err := s.repos.Routes.List(s.ctx, domain.RouteFilter{})
	s.Require().NoError(err)
	s.Empty(routes)
}

func (s *RepositorySuite) TestRoute_DeleteMissing() {
	s.ErrorIs(s.repos.Routes.Delete(s.ctx, 31337), errors.ErrRouteNotFound)
}

// ============================================================================
// Activity
// ============================================================================

func (s *RepositorySuite) TestActivity_RecordIsIdempotent() {
	event := domain.NewChangeEvent(domain.EntityPoint, 5, domain.ActionCreated)
	a := domain.ActivityFromEvent(event)

	count, err := s.repos.Activity.RecordBatch(s.ctx, []*domain.Activity{a})
	s.Require().NoError(err)
	s.Equal(1, count)

	count, err = s.repos.Activity.RecordBatch(s.ctx, []*domain.Activity{
		a,
		domain.ActivityFromEvent(domain.ChangeEvent{
			ID: uuid.New(), Entity: domain.EntityPoint, EntityID: 5,
			Action: domain.ActionDeleted, OccurredAt: event.OccurredAt.Add(time.Second),
		}),
	})
	s.Require().NoError(err)
	s.Equal(1, count)

	entity := domain.EntityPoint
	list, err := s.repos.Activity.List(s.ctx, domain.ActivityFilter{Entity: &entity})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(string(domain.ActionDeleted), list[0].Action)
}
