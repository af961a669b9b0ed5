// internal/handlers/partner.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type PartnerHandler struct {
	partnerService *services.PartnerService
	catalogService *services.CatalogService
	orderService   *services.OrderService
}

func NewPartnerHandler(
	partnerService *services.PartnerService,
	catalogService *services.CatalogService,
	orderService *services.OrderService,
) *PartnerHandler {
	return &PartnerHandler{
		partnerService: partnerService,
		catalogService: catalogService,
		orderService:   orderService,
	}
}

// POST /partner/update with {"url": "..."}
func (h *PartnerHandler) UpdateCatalog(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ImportFeedRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.catalogService.ImportFromURL(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"import": result})
}

// GET /partner/state
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	shop, err := h.partnerService.GetShop(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"shop": shop})
}

// POST /partner/state with {"state": true|false}
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.PartnerStateRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.partnerService.SetState(c.Request.Context(), userID, *req.State)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"shop": shop})
}

// GET /partner/orders
func (h *PartnerHandler) Orders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.PartnerOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": orders})
}
