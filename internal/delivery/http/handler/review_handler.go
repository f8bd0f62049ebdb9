package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rutea-api/internal/domain"
	"github.com/rutea-api/internal/pkg/utils"
	"github.com/rutea-api/internal/usecase"
	"github.com/rutea-api/internal/usecase/dto"
)

// ReviewHandler - /api/resenas
type ReviewHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

func NewReviewHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// List godoc
// @Summary List reviews
// @Description Returns every item matching all given filters, ordered by id
// @Tags Reviews
// @Produce json
// @Param editada query bool false "Edited flag"
// @Param likes query int false "Likes"
// @Param valoracion query int false "Rating"
// @Success 200 {array} dto.ReviewResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/resenas [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	var (
		filter domain.ReviewFilter
		err    error
	)
	if filter.Edited, err = queryBool(c, "editada"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if filter.Likes, err = queryInt(c, "likes"); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if filter.Rating, err = queryInt(c, "valoracion"); err != nil {
		return utils.SendError(c, h.logger, err)
	}

	items, err := h.reviewUC.List(c.UserContext(), filter)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, items)
}

// Get godoc
// @Summary Get a review
// @Tags Reviews
// @Produce json
// @Param id path int true "Review id"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/resenas/{id} [get]
func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.reviewUC.GetByID(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Create godoc
// @Summary Create a review
// @Description fechaPublicacion defaults to today. The point and the user must exist
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body dto.ReviewRequest true "Review"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/resenas [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.reviewUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendCreated(c, item)
}

// Update godoc
// @Summary Replace a review
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review id"
// @Param request body dto.ReviewRequest true "Review"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/resenas/{id} [put]
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.reviewUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Patch godoc
// @Summary Partially update a review
// @Description Applies only the keys present in the body. Unknown keys and id are ignored
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Review id"
// @Param request body object true "Fields to change"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/resenas/{id} [patch]
func (h *ReviewHandler) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	payload, err := parsePatch(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	item, err := h.reviewUC.Patch(c.UserContext(), id, payload)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendOK(c, item)
}

// Delete godoc
// @Summary Delete a review
// @Tags Reviews
// @Param id path int true "Review id"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/resenas/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, h.logger, err)
	}
	if err := h.reviewUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, h.logger, err)
	}
	return utils.SendNoContent(c)
}
