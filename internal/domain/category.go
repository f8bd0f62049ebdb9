package domain

// Category groups points of interest.
type Category struct {
	ID          int64   `db:"id"`
	Name        string  `db:"nombre"`
	Description *string `db:"descripcion"`
	IconURL     *string `db:"icono_url"`
	Priority    int     `db:"orden_prioridad"`
	Active      bool    `db:"activa"`
	AverageCost float32 `db:"coste_promedio"`
}

type CategoryFilter struct {
	Active   *bool
	Name     *string
	Priority *int
}
