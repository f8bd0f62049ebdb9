package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/usecase/dto"
)

// RouteHandler - /api/rutas
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// List godoc
// @Summary List routes
// @Description Returns every item matching all given filters, ordered by id
// @Tags Routes
// @Produce json
// @Param dificultad query string false "Case-insensitive difficulty fragment"
// @Param publica query bool false "Public flag"
// @Param titulo query string false "Case-insensitive title fragment"
// @Success 200 {array} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/rutas [get]
func (h *RouteHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.RouteFilter
		err    error
	)
	filter.Difficulty = queryString(c, "dificultad")
	if filter.Public, err = queryBool(c, "publica"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	filter.Title = queryString(c, "titulo")

	items, err := h.routeUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, items)
}

// Get godoc
// @Summary Get a route
// @Tags Routes
// @Produce json
// @Param id path int true "Route id"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/rutas/{id} [get]
func (h *RouteHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.routeUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Create godoc
// @Summary Create a route
// @Description puntosIds keeps its order and may repeat a point
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Route"
// @Success 201 {object} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/rutas [post]
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.routeUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendCreated(c, item)
}

// Update godoc
// @Summary Replace a route
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "Route id"
// @Param request body dto.RouteRequest true "Route"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/rutas/{id} [put]
func (h *RouteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	var req dto.RouteRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.routeUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Patch godoc
// @Summary Partially update a route
// @Description Applies only the keys present in the body. Unknown keys and id are ignored
// @Tags Routes
// @Accept json
// @Produce json
// @Param id path int true "Route id"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/rutas/{id} [patch]
func (h *RouteHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	payload, err := parsePatch(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.routeUC.Patch(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Delete godoc
// @Summary Delete a route
// @Tags Routes
// @Param id path int true "Route id"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/rutas/{id} [delete]
func (h *RouteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if err := h.routeUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
