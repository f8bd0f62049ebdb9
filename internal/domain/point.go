package domain

// RatingEpsilon - tolerance used when matching average ratings
const RatingEpsilon = 1e-4

// PointOfInterest - a place that belongs to exactly one category.
// CategoryName is read-only, filled from the category on reads.
type PointOfInterest struct {
	ID            int64    `db:"id"`
	Name          string   `db:"nombre"`
	Latitude      float64  `db:"latitud"`
	Longitude     float64  `db:"longitud"`
	AverageRating float32  `db:"puntuacion_media"`
	OpenNow       bool     `db:"abierto_actualmente"`
	CreatedAt     DateTime `db:"fecha_creacion"`
	CategoryID    int64    `db:"categoria_id"`
	CategoryName  string   `db:"categoria_nombre"`
}

type PointFilter struct {
	CategoryID    *int64
	OpenNow       *bool
	Name          *string
	AverageRating *float64
}
