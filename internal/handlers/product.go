// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/i18n"
	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// GET /products?shop_id=&category_id=
func (h *ProductHandler) ListProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	filter := services.ProductFilter{PaginationParams: utils.GetPaginationParams(c)}

	if shopIDStr := c.Query("shop_id"); shopIDStr != "" {
		shopID, err := strconv.ParseUint(shopIDStr, 10, 64)
		if err != nil {
			utils.FailureResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "shop_id"))
			return
		}
		id := uint(shopID)
		filter.ShopID = &id
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			utils.FailureResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "category_id"))
			return
		}
		id := uint(categoryID)
		filter.CategoryID = &id
	}

	infos, total, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "products", utils.CreatePaginationResult(infos, total, filter.PaginationParams))
}

// GET /shops
func (h *ProductHandler) ListShops(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	shops, total, err := h.catalogService.ListShops(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "shops", utils.CreatePaginationResult(shops, total, params))
}

// GET /categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	categories, total, err := h.catalogService.ListCategories(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "categories", utils.CreatePaginationResult(categories, total, params))
}
