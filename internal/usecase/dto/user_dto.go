package dto

import "github.com/rutea-api/internal/domain"

// UserRequest - body of POST and PUT /api/usuarios
type UserRequest struct {
	Email           string       `json:"email" validate:"required,email,max=255" example:"ana@example.com"`
	Username        string       `json:"username" validate:"notblank,max=255" example:"ana"`
	Password        string       `json:"password" validate:"required,min=6,max=255" example:"secret123"`
	ExperienceLevel int          `json:"nivelExperiencia" validate:"min=0" example:"2"`
	Premium         bool         `json:"esPremium"`
	RegisteredAt    *domain.Date `json:"fechaRegistro" validate:"required" swaggertype:"string" example:"2024-05-01"`
}

// ToDomain copies the request into a user. The password is left for the
// caller to hash.
func (r *UserRequest) ToDomain() *domain.User {
	u := &domain.User{
		Email:           r.Email,
		Username:        r.Username,
		ExperienceLevel: r.ExperienceLevel,
		Premium:         r.Premium,
	}
	if r.RegisteredAt != nil {
		u.RegisteredAt = *r.RegisteredAt
	}
	return u
}

// UserRequestFromDomain rebuilds a request from a stored user so a patched
// copy can be validated with the create rules. password is the value to
// validate: the new plaintext when patched, the stored hash otherwise.
func UserRequestFromDomain(u *domain.User, password string) *UserRequest {
	registered := u.RegisteredAt
	return &UserRequest{
		Email:           u.Email,
		Username:        u.Username,
		Password:        password,
		ExperienceLevel: u.ExperienceLevel,
		Premium:         u.Premium,
		RegisteredAt:    &registered,
	}
}

// UserResponse - never carries the password
type UserResponse struct {
	ID              int64       `json:"id" example:"1"`
	Email           string      `json:"email" example:"ana@example.com"`
	Username        string      `json:"username" example:"ana"`
	ExperienceLevel int         `json:"nivelExperiencia" example:"2"`
	Premium         bool        `json:"esPremium"`
	RegisteredAt    domain.Date `json:"fechaRegistro" swaggertype:"string" example:"2024-05-01"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		ExperienceLevel: u.ExperienceLevel,
		Premium:         u.Premium,
		RegisteredAt:    u.RegisteredAt,
	}
}

func NewUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
