package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rutea-api/internal/config"
	"github.com/rutea-api/internal/delivery/http/handler"
	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository/mocks"
	"github.com/rutea-api/internal/pkg/errors"
	"github.com/rutea-api/internal/usecase"
)

type testRepos struct {
	users      *mocks.UserRepository
	categories *mocks.CategoryRepository
	points     *mocks.PointRepository
	reviews    *mocks.ReviewRepository
	routes     *mocks.RouteRepository
	activity   *mocks.ActivityRepository
}

type stubChecker struct{ err error }

func (s stubChecker) Health(context.Context) error { return s.err }

func newTestApp(t *testing.T) (*fiber.App, *testRepos) {
	t.Helper()

	log := zap.NewNop()
	repos := &testRepos{
		users:      &mocks.UserRepository{},
		categories: &mocks.CategoryRepository{},
		points:     &mocks.PointRepository{},
		reviews:    &mocks.ReviewRepository{},
		routes:     &mocks.RouteRepository{},
		activity:   &mocks.ActivityRepository{},
	}
	events := usecase.NopEventPublisher{}

	handlers := Handlers{
		User:     handler.NewUserHandler(usecase.NewUserUseCase(repos.users, events, bcrypt.MinCost, log), log),
		Category: handler.NewCategoryHandler(usecase.NewCategoryUseCase(repos.categories, events, log), log),
		Point:    handler.NewPointHandler(usecase.NewPointUseCase(repos.points, repos.categories, events, log), log),
		Review:   handler.NewReviewHandler(usecase.NewReviewUseCase(repos.reviews, repos.points, repos.users, events, log), log),
		Route:    handler.NewRouteHandler(usecase.NewRouteUseCase(repos.routes, repos.users, repos.points, events, log), log),
		Activity: handler.NewActivityHandler(usecase.NewActivityUseCase(repos.activity, log), log),
		Health:   handler.NewHealthHandler(map[string]handler.HealthChecker{"postgres": stubChecker{}}, log),
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{CORSAllowOrigins: "*"},
		Metrics: config.MetricsConfig{Enabled: true},
	}
	server := NewServer(cfg, log, handlers, prometheus.NewRegistry())
	return server.App(), repos
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeError(t *testing.T, raw []byte) errors.AppError {
	t.Helper()
	var out errors.AppError
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestCategory_CreateThenGet(t *testing.T) {
	app, repos := newTestApp(t)

	var created *domain.Category
	repos.categories.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Category)
			created.ID = 1
		}).
		Return(nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/categorias",
		`{"nombre":"Museos","ordenPrioridad":1,"activa":true,"costePromedio":12.5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Museos", body["nombre"])

	repos.categories.On("GetByID", mock.Anything, int64(1)).Return(created, nil)

	resp, raw = doRequest(t, app, http.MethodGet, "/api/categorias/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Museos", body["nombre"])
	assert.Equal(t, true, body["activa"])
}

func TestCategory_ValidationErrorBody(t *testing.T) {
	app, repos := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/categorias", `{"nombre":"  ","ordenPrioridad":-1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	appErr := decodeError(t, raw)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Reason)
	assert.Equal(t, "nombre is mandatory", appErr.Fields["nombre"])
	assert.Contains(t, appErr.Fields, "ordenPrioridad")
	repos.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategory_DeleteInUse(t *testing.T) {
	app, repos := newTestApp(t)
	repos.categories.On("Delete", mock.Anything, int64(3)).
		Return(errors.ErrConflict.WithMessage("Category still has points of interest"))

	resp, raw := doRequest(t, app, http.MethodDelete, "/api/categorias/3", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, raw).Reason)
}

func TestPoint_CreateWithUnknownCategory(t *testing.T) {
	app, repos := newTestApp(t)
	repos.categories.On("GetByID", mock.Anything, int64(9999)).Return(nil, errors.ErrCategoryNotFound)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/puntos",
		`{"nombre":"Museo del Prado","latitud":40.41,"longitud":-3.69,"categoriaId":9999}`)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	appErr := decodeError(t, raw)
	assert.Equal(t, "CATEGORY_NOT_FOUND", appErr.Reason)
	assert.Equal(t, "Category 9999 not found", appErr.Message)
	repos.points.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPoint_ListFilters(t *testing.T) {
	app, repos := newTestApp(t)

	categoryID := int64(2)
	openNow := true
	rating := 4.5
	expected := domain.PointFilter{CategoryID: &categoryID, OpenNow: &openNow, AverageRating: &rating}
	repos.points.On("List", mock.Anything, expected).Return([]*domain.PointOfInterest{
		{ID: 1, Name: "Retiro", CategoryID: 2, CategoryName: "Parques", AverageRating: 4.5, OpenNow: true},
	}, nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/puntos?categoriaId=2&abiertoActualmente=true&puntuacionMedia=4.5&nombre=", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body []map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Parques", body[0]["categoriaNombre"])
}

func TestList_EmptyCollectionIsArray(t *testing.T) {
	app, repos := newTestApp(t)
	repos.routes.On("List", mock.Anything, domain.RouteFilter{}).Return([]*domain.Route{}, nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/rutas", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestList_UnparsableQuery(t *testing.T) {
	app, repos := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/usuarios?premium=maybe", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MALFORMED_REQUEST", decodeError(t, raw).Reason)
	repos.users.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestReview_PatchRating(t *testing.T) {
	app, repos := newTestApp(t)

	existing := &domain.Review{
		ID: 4, Comment: "Bonito", Rating: 3, Likes: 10,
		PublishedOn: domain.NewDate(2024, 5, 1), PointID: 1, UserID: 2,
	}
	repos.reviews.On("GetByID", mock.Anything, int64(4)).Return(existing, nil)
	repos.reviews.On("Update", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	resp, raw := doRequest(t, app, http.MethodPatch, "/api/resenas/4", `{"valoracion":5,"id":100}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(4), body["id"])
	assert.Equal(t, float64(5), body["valoracion"])
	assert.Equal(t, "Bonito", body["comentario"])
	assert.Equal(t, "2024-05-01", body["fechaPublicacion"])
}

func TestRoute_DeleteMissing(t *testing.T) {
	app, repos := newTestApp(t)
	repos.routes.On("Delete", mock.Anything, int64(77)).Return(errors.ErrRouteNotFound)

	resp, raw := doRequest(t, app, http.MethodDelete, "/api/rutas/77", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", decodeError(t, raw).Reason)
}

func TestRoute_DeleteNoContent(t *testing.T) {
	app, repos := newTestApp(t)
	repos.routes.On("Delete", mock.Anything, int64(5)).Return(nil)

	resp, raw := doRequest(t, app, http.MethodDelete, "/api/rutas/5", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)
}

func TestMalformedRequests(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"bad json", http.MethodPost, "/api/usuarios", `{"email":`},
		{"wrong type", http.MethodPost, "/api/resenas", `{"valoracion":"cinco"}`},
		{"non-integer id", http.MethodGet, "/api/rutas/abc", ""},
		{"patch array body", http.MethodPatch, "/api/categorias/1", `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRequest(t, app, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
			assert.Equal(t, "MALFORMED_REQUEST", decodeError(t, raw).Reason)
		})
	}
}

func TestUser_ResponseHasNoPassword(t *testing.T) {
	app, repos := newTestApp(t)
	repos.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{
		ID: 1, Email: "ana@example.com", Username: "ana", PasswordHash: "$2a$04$hash",
		RegisteredAt: domain.NewDate(2024, 1, 15),
	}, nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/usuarios/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$04$hash")
}

func TestActivity_ListDefaultsLimit(t *testing.T) {
	app, repos := newTestApp(t)

	entity := domain.EntityRoute
	repos.activity.On("List", mock.Anything, domain.ActivityFilter{Entity: &entity, Limit: domain.DefaultActivityLimit}).
		Return([]*domain.Activity{}, nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/actividad?entidad=ruta", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	repos.activity.AssertExpectations(t)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/planetas", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decodeError(t, raw).Reason)
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","services":{"postgres":"up"}}`, string(raw))

	resp, raw = doRequest(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "rutea_http_requests_total")
	assert.Contains(t, string(raw), fmt.Sprintf(`route="%s"`, "/api/health"))
}
