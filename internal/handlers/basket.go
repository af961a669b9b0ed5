// internal/handlers/basket.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/i18n"
	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type BasketHandler struct {
	basketService *services.BasketService
}

func NewBasketHandler(basketService *services.BasketService) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
	}
}

// GET /basket
func (h *BasketHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	basket, err := h.basketService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"basket": basket})
}

// POST /basket
func (h *BasketHandler) AddItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddBasketItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.basketService.AddItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateItem) {
			// Name the offending listing
			utils.FailureResponse(c, gin.H{
				"message": i18n.T(utils.GetLangFromContext(c), i18n.KeyBasketDuplicateItem),
				"detail":  err.Error(),
			})
			return
		}
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"Created": created})
}

// PUT /basket
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateBasketItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.basketService.UpdateItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"Updated": updated})
}

// DELETE /basket with {"items": "1,2,3"}
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RemoveBasketItemsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := utils.ParseIDList(req.Items)
	if len(ids) == 0 {
		utils.MissingArgumentsResponse(c)
		return
	}

	deleted, err := h.basketService.RemoveItems(c.Request.Context(), userID, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"Deleted": deleted})
}
