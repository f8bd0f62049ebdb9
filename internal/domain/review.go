package domain

type Review struct {
	ID          int64   `db:"id"`
	Comment     string  `db:"comentario"`
	Title       *string `db:"titulo"`
	Rating      int     `db:"valoracion"`
	Likes       int     `db:"likes"`
	Edited      bool    `db:"editada"`
	PublishedOn Date    `db:"fecha_publicacion"`
	PointID     int64   `db:"punto_id"`
	UserID      int64   `db:"usuario_id"`
}

type ReviewFilter struct {
	Edited *bool
	Likes  *int
	Rating *int
}
