// internal/handlers/contact.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

type ContactHandler struct {
	contactService *services.ContactService
}

type deleteContactsRequest struct {
	Items string `json:"items" validate:"required"`
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// GET /user/contact
func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"contacts": contacts})
}

// POST /user/contact
func (h *ContactHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"contact": contact})
}

// PUT /user/contact
func (h *ContactHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateContactRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"contact": contact})
}

// DELETE /user/contact with {"items": "1,2,3"}
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req deleteContactsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := utils.ParseIDList(req.Items)
	if len(ids) == 0 {
		utils.MissingArgumentsResponse(c)
		return
	}

	deleted, err := h.contactService.Delete(c.Request.Context(), userID, ids)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"Deleted": deleted})
}
