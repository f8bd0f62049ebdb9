package domain

// Route - an itinerary created by a user. PointIDs keeps the order in which
// the points were given and may contain the same point more than once.
type Route struct {
	ID              int64   `db:"id"`
	Title           string  `db:"titulo"`
	Difficulty      *string `db:"dificultad"`
	DistanceKm      float32 `db:"distancia_km"`
	DurationMinutes int     `db:"duracion_minutos"`
	Public          bool    `db:"publica"`
	CompletedOn     Date    `db:"fecha_realizacion"`
	UserID          int64   `db:"usuario_id"`
	PointIDs        []int64 `db:"-"`
}

type RouteFilter struct {
	Difficulty *string
	Public     *bool
	Title      *string
}
