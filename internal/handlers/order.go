// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/i18n"
	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
	userService  *services.UserService
}

func NewOrderHandler(orderService *services.OrderService, userService *services.UserService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		userService:  userService,
	}
}

// GET /order
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}

// POST /order with {"id": <basket id>, "contact": <contact id>}
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	placed, err := h.orderService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !placed {
		utils.FailureResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderNotFound))
		return
	}

	utils.SuccessResponse(c, nil)
}

// GET /thanks
func (h *OrderHandler) Thanks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetDetails(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"Message": i18n.T(utils.GetLangFromContext(c), i18n.KeyOrderThanks, user.DisplayName()),
	})
}
