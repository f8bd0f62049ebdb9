package domain

// User - registered traveller. PasswordHash holds a bcrypt hash, never the
// plaintext.
type User struct {
	ID              int64  `db:"id"`
	Email           string `db:"email"`
	Username        string `db:"username"`
	PasswordHash    string `db:"password"`
	ExperienceLevel int    `db:"nivel_experiencia"`
	Premium         bool   `db:"es_premium"`
	RegisteredAt    Date   `db:"fecha_registro"`
}

// UserFilter - optional list criteria, nil means "not applied"
type UserFilter struct {
	Premium         *bool
	ExperienceLevel *int
	Username        *string
}
