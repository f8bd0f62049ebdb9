package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/usecase/dto"
)

// PointHandler - /api/puntos
type PointHandler struct {
	pointUC *usecase.PointUseCase
	logger  *zap.Logger
}

func NewPointHandler(pointUC *usecase.PointUseCase, logger *zap.Logger) *PointHandler {
	return &PointHandler{
		pointUC: pointUC,
		logger:  logger,
	}
}

// List godoc
// @Summary List points of interest
// @Description Returns every item matching all given filters, ordered by id
// @Tags Points
// @Produce json
// @Param categoriaId query int false "Category id"
// @Param abiertoActualmente query bool false "Open now"
// @Param nombre query string false "Case-insensitive name fragment"
// @Param puntuacionMedia query number false "Average rating"
// @Success 200 {array} dto.PointResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/puntos [get]
func (h *PointHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.PointFilter
		err    error
	)
	if filter.CategoryID, err = queryInt64(c, "categoriaId"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if filter.OpenNow, err = queryBool(c, "abiertoActualmente"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	filter.Name = queryString(c, "nombre")
	if filter.AverageRating, err = queryFloat(c, "puntuacionMedia"); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	items, err := h.pointUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, items)
}

// Get godoc
// @Summary Get a point
// @Tags Points
// @Produce json
// @Param id path int true "Point id"
// @Success 200 {object} dto.PointResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/puntos/{id} [get]
func (h *PointHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.pointUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Create godoc
// @Summary Create a point
// @Description fechaCreacion defaults to the current time. The category must exist
// @Tags Points
// @Accept json
// @Produce json
// @Param request body dto.PointRequest true "Point"
// @Success 201 {object} dto.PointResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/puntos [post]
func (h *PointHandler) Create(c *fiber.Ctx) error {
	var req dto.PointRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.pointUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendCreated(c, item)
}

// Update godoc
// @Summary Replace a point
// @Tags Points
// @Accept json
// @Produce json
// @Param id path int true "Point id"
// @Param request body dto.PointRequest true "Point"
// @Success 200 {object} dto.PointResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/puntos/{id} [put]
func (h *PointHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	var req dto.PointRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.pointUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Patch godoc
// @Summary Partially update a point
// @Description Applies only the keys present in the body. Unknown keys and id are ignored
// @Tags Points
// @Accept json
// @Produce json
// @Param id path int true "Point id"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.PointResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/puntos/{id} [patch]
func (h *PointHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	payload, err := parsePatch(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.pointUC.Patch(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Delete godoc
// @Summary Delete a point
// @Description Also removes the point's reviews and its places in routes
// @Tags Points
// @Param id path int true "Point id"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/puntos/{id} [delete]
func (h *PointHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if err := h.pointUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
