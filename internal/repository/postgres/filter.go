package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/rutea-api/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s as a literal substring.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// where applies the conjunction only when it has predicates, so an empty
// filter yields no WHERE clause at all.
func where(b sq.SelectBuilder, preds sq.And) sq.SelectBuilder {
	if len(preds) == 0 {
		return b
	}
	return b.Where(preds)
}

func userPredicates(f domain.UserFilter) sq.And {
	preds := sq.And{}
	if f.Premium != nil {
		preds = append(preds, sq.Eq{"es_premium": *f.Premium})
	}
	if f.ExperienceLevel != nil {
		preds = append(preds, sq.Eq{"nivel_experiencia": *f.ExperienceLevel})
	}
	if f.Username != nil {
		preds = append(preds, sq.ILike{"username": containsPattern(*f.Username)})
	}
	return preds
}

func categoryPredicates(f domain.CategoryFilter) sq.And {
	preds := sq.And{}
	if f.Active != nil {
		preds = append(preds, sq.Eq{"activa": *f.Active})
	}
	if f.Name != nil {
		preds = append(preds, sq.ILike{"nombre": containsPattern(*f.Name)})
	}
	if f.Priority != nil {
		preds = append(preds, sq.Eq{"orden_prioridad": *f.Priority})
	}
	return preds
}

// pointPredicates uses the "p" alias of puntos_interes.
func pointPredicates(f domain.PointFilter) sq.And {
	preds := sq.And{}
	if f.CategoryID != nil {
		preds = append(preds, sq.Eq{"p.categoria_id": *f.CategoryID})
	}
	if f.OpenNow != nil {
		preds = append(preds, sq.Eq{"p.abierto_actualmente": *f.OpenNow})
	}
	if f.Name != nil {
		preds = append(preds, sq.ILike{"p.nombre": containsPattern(*f.Name)})
	}
	if f.AverageRating != nil {
		preds = append(preds, sq.Expr("ABS(p.puntuacion_media - ?) < ?", *f.AverageRating, domain.RatingEpsilon))
	}
	return preds
}

func reviewPredicates(f domain.ReviewFilter) sq.And {
	preds := sq.And{}
	if f.Edited != nil {
		preds = append(preds, sq.Eq{"editada": *f.Edited})
	}
	if f.Likes != nil {
		preds = append(preds, sq.Eq{"likes": *f.Likes})
	}
	if f.Rating != nil {
		preds = append(preds, sq.Eq{"valoracion": *f.Rating})
	}
	return preds
}

func routePredicates(f domain.RouteFilter) sq.And {
	preds := sq.And{}
	if f.Difficulty != nil {
		preds = append(preds, sq.ILike{"dificultad": containsPattern(*f.Difficulty)})
	}
	if f.Public != nil {
		preds = append(preds, sq.Eq{"publica": *f.Public})
	}
	if f.Title != nil {
		preds = append(preds, sq.ILike{"titulo": containsPattern(*f.Title)})
	}
	return preds
}

func activityPredicates(f domain.ActivityFilter) sq.And {
	preds := sq.And{}
	if f.Entity != nil {
		preds = append(preds, sq.Eq{"entidad": *f.Entity})
	}
	if f.EntityID != nil {
		preds = append(preds, sq.Eq{"entidad_id": *f.EntityID})
	}
	return preds
}
