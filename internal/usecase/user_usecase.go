package usecase

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/domain/repository"
	"github.com/rutea-api/internal/pkg/errors"
	"github.com/rutea-api/internal/pkg/validator"
	"github.com/rutea-api/internal/usecase/dto"
	"github.com/rutea-api/internal/usecase/patch"
)

const passwordKey = "password"

type UserUseCase struct {
	userRepo   repository.UserRepository
	events     EventPublisher
	bcryptCost int
	patches    *patch.Table[domain.User]
	logger     *zap.Logger
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	events EventPublisher,
	bcryptCost int,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		events:     events,
		bcryptCost: bcryptCost,
		patches:    userPatchTable(),
		logger:     logger,
	}
}

// userPatchTable - the password setter stores the plaintext in PasswordHash;
// Patch validates and hashes it afterwards.
func userPatchTable() *patch.Table[domain.User] {
	return patch.NewTable(
		patch.StringField("email", func(u *domain.User, v string) { u.Email = v }),
		patch.StringField("username", func(u *domain.User, v string) { u.Username = v }),
		patch.StringField(passwordKey, func(u *domain.User, v string) { u.PasswordHash = v }),
		patch.IntField("nivelExperiencia", func(u *domain.User, v int) { u.ExperienceLevel = v }),
		patch.BoolField("esPremium", func(u *domain.User, v bool) { u.Premium = v }),
		patch.DateField("fechaRegistro", func(u *domain.User, v domain.Date) { u.RegisteredAt = v }),
	)
}

func (uc *UserUseCase) Create(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	user := req.ToDomain()
	hash, err := uc.hash(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Warn("Failed to create user", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User created", zap.Int64("id", user.ID))
	uc.events.Publish(ctx, domain.EntityUser, user.ID, domain.ActionCreated)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Debug("User lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (uc *UserUseCase) List(ctx context.Context, filter domain.UserFilter) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}
	uc.logger.Debug("Users listed", zap.Int("count", len(users)))
	return dto.NewUserResponses(users), nil
}

// Update replaces every field of the user, including the password.
func (uc *UserUseCase) Update(ctx context.Context, id int64, req dto.UserRequest) (*dto.UserResponse, error) {
	if _, err := uc.userRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	user := req.ToDomain()
	user.ID = id
	hash, err := uc.hash(req.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Warn("Failed to update user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User updated", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityUser, id, domain.ActionUpdated)

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (uc *UserUseCase) Patch(ctx context.Context, id int64, payload map[string]any) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	ignored, err := uc.patches.Apply(ctx, &updated, payload)
	logIgnored(uc.logger, domain.EntityUser, id, ignored)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	_, passwordPatched := payload[passwordKey]
	if err := validator.Validate(dto.UserRequestFromDomain(&updated, updated.PasswordHash)); err != nil {
		return nil, err
	}
	if passwordPatched {
		hash, err := uc.hash(updated.PasswordHash)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := uc.userRepo.Update(ctx, &updated); err != nil {
		uc.logger.Warn("Failed to patch user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User patched", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityUser, id, domain.ActionPatched)

	resp := dto.NewUserResponse(&updated)
	return &resp, nil
}

// Delete removes the user together with its reviews and routes.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		uc.logger.Debug("Failed to delete user", zap.Int64("id", id), zap.Error(err))
		return err
	}
	uc.logger.Info("User deleted", zap.Int64("id", id))
	uc.events.Publish(ctx, domain.EntityUser, id, domain.ActionDeleted)
	return nil
}

func (uc *UserUseCase) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if stderrors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errors.NewValidationError(map[string]string{passwordKey: "password max length is 72 bytes"})
	}
	if err != nil {
		uc.logger.Error("Failed to hash password", zap.Error(err))
		return "", errors.ErrInternalServer
	}
	return string(hash), nil
}

func logIgnored(logger *zap.Logger, entity string, id int64, keys []string) {
	if len(keys) == 0 {
		return
	}
	logger.Warn("Ignoring unknown patch fields",
		zap.String("entity", entity),
		zap.Int64("id", id),
		zap.Strings("fields", keys),
	)
}
