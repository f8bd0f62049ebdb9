package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/usecase/dto"
)

// UserHandler - /api/usuarios
type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// List godoc
// @Summary List users
// @Description Returns every user matching all given filters, ordered by id
// @Tags Users
// @Produce json
// @Param premium query bool false "Premium flag"
// @Param nivelExperiencia query int false "Experience level"
// @Param username query string false "Case-insensitive username fragment"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.UserFilter
		err    error
	)
	if filter.Premium, err = queryBool(c, "premium"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if filter.ExperienceLevel, err = queryInt(c, "nivelExperiencia"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	filter.Username = queryString(c, "username")

	users, err := h.userUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, users)
}

// Get godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/usuarios/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	user, err := h.userUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, user)
}

// Create godoc
// @Summary Create a user
// @Description The password is stored as a bcrypt hash and never returned
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.UserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/usuarios [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	user, err := h.userUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendCreated(c, user)
}

// Update godoc
// @Summary Replace a user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param request body dto.UserRequest true "User"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	var req dto.UserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	user, err := h.userUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, user)
}

// Patch godoc
// @Summary Partially update a user
// @Description Applies only the keys present in the body. Unknown keys and id are ignored
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/usuarios/{id} [patch]
func (h *UserHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	payload, err := parsePatch(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	user, err := h.userUC.Patch(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Also removes the user's reviews and routes
// @Tags Users
// @Param id path int true "User id"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if err := h.userUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
