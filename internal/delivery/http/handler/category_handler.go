package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/usecase/dto"
)

// CategoryHandler - /api/categorias
type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
	logger     *zap.Logger
}

func NewCategoryHandler(categoryUC *usecase.CategoryUseCase, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryUC: categoryUC,
		logger:     logger,
	}
}

// List godoc
// @Summary List categories
// @Description Returns every item matching all given filters, ordered by id
// @Tags Categories
// @Produce json
// @Param activa query bool false "Active flag"
// @Param nombre query string false "Case-insensitive name fragment"
// @Param ordenPrioridad query int false "Priority"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/categorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.CategoryFilter
		err    error
	)
	if filter.Active, err = queryBool(c, "activa"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	filter.Name = queryString(c, "nombre")
	if filter.Priority, err = queryInt(c, "ordenPrioridad"); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	items, err := h.categoryUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, items)
}

// Get godoc
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/categorias/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.categoryUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Create godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body dto.CategoryRequest true "Category"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/categorias [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.categoryUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendCreated(c, item)
}

// Update godoc
// @Summary Replace a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param request body dto.CategoryRequest true "Category"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/categorias/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	var req dto.CategoryRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.categoryUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Patch godoc
// @Summary Partially update a category
// @Description Applies only the keys present in the body. Unknown keys and id are ignored
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/categorias/{id} [patch]
func (h *CategoryHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	payload, err := parsePatch(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.categoryUC.Patch(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Delete godoc
// @Summary Delete a category
// @Description Refused with 409 while points of interest still use the category
// @Tags Categories
// @Param id path int true "Category id"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/categorias/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if err := h.categoryUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
