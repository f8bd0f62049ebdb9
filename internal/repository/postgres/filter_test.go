package postgres

import (
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutea-api/internal/domain"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"ruta", "%ruta%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, containsPattern(tt.in))
	}
}

func TestUserList_EmptyFilterHasNoWhere(t *testing.T) {
	query, args, err := where(psql.Select(userColumns).From("usuarios"), userPredicates(domain.UserFilter{})).
		OrderBy("id").
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT "+userColumns+" FROM usuarios ORDER BY id", query)
	assert.Empty(t, args)
}

func TestUserList_AllFiltersAreAnded(t *testing.T) {
	premium := true
	level := 3
	name := "ana"

	query, args, err := where(psql.Select("id").From("usuarios"), userPredicates(domain.UserFilter{
		Premium:         &premium,
		ExperienceLevel: &level,
		Username:        &name,
	})).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM usuarios WHERE (es_premium = $1 AND nivel_experiencia = $2 AND username ILIKE $3)", query)
	assert.Equal(t, []interface{}{true, 3, "%ana%"}, args)
}

func TestPointPredicates_RatingUsesTolerance(t *testing.T) {
	rating := 4.5
	categoryID := int64(2)

	sql, args, err := pointPredicates(domain.PointFilter{
		CategoryID:    &categoryID,
		AverageRating: &rating,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "(p.categoria_id = ? AND ABS(p.puntuacion_media - ?) < ?)", sql)
	assert.Equal(t, []interface{}{int64(2), 4.5, domain.RatingEpsilon}, args)
}

func TestPredicates_SingleFilter(t *testing.T) {
	active := false
	edited := true
	title := "costa"

	tests := []struct {
		name     string
		preds    sq.And
		expected string
		args     []interface{}
	}{
		{
			name:     "category active",
			preds:    categoryPredicates(domain.CategoryFilter{Active: &active}),
			expected: "(activa = ?)",
			args:     []interface{}{false},
		},
		{
			name:     "review edited",
			preds:    reviewPredicates(domain.ReviewFilter{Edited: &edited}),
			expected: "(editada = ?)",
			args:     []interface{}{true},
		},
		{
			name:     "route title",
			preds:    routePredicates(domain.RouteFilter{Title: &title}),
			expected: "(titulo ILIKE ?)",
			args:     []interface{}{"%costa%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.preds.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestActivityList_NewestFirstWithLimit(t *testing.T) {
	entity := domain.EntityRoute
	filter := domain.ActivityFilter{Entity: &entity, Limit: 10}

	query, args, err := where(psql.Select("id").From("actividad"), activityPredicates(filter)).
		OrderBy("fecha DESC", "id DESC").
		Limit(uint64(filter.NormalizedLimit())).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM actividad WHERE (entidad = $1) ORDER BY fecha DESC, id DESC LIMIT 10", query)
	assert.Equal(t, []interface{}{"ruta"}, args)
}
