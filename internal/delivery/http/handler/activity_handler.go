package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
)

// ActivityHandler exposes the change log written by the activity worker.
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
	logger     *zap.Logger
}

func NewActivityHandler(activityUC *usecase.ActivityUseCase, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityUC: activityUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Recent activity
// @Description Most recent change events, newest first
// @Tags Activity
// @Produce json
// @Param entidad query string false "Entity (usuario, categoria, punto, resena, ruta)"
// @Param entidadId query int false "Entity id"
// @Param limit query int false "Maximum entries (max 500)" default(50)
// @Success 200 {array} dto.ActivityResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/actividad [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.ActivityFilter
		err    error
	)
	filter.Entity = queryString(c, "entidad")
	if filter.EntityID, err = queryInt64(c, "entidadId"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if limit != nil {
		filter.Limit = *limit
	}

	items, err := h.activityUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, items)
}
