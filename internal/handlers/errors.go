// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/orders-backend/internal/i18n"
	"github.com/javajoker/orders-backend/internal/services"
	"github.com/javajoker/orders-backend/internal/utils"
)

// failureKeys maps service errors to the message reported with Status false.
var failureKeys = []struct {
	err error
	key string
}{
	{services.ErrUserExists, i18n.KeyAuthUserExists},
	{services.ErrUserNotFound, i18n.KeyUserNotFound},
	{services.ErrInvalidCredentials, i18n.KeyAuthInvalidCredentials},
	{services.ErrInactiveAccount, i18n.KeyAuthInactive},
	{services.ErrInvalidConfirmToken, i18n.KeyAuthInvalidConfirm},
	{services.ErrInvalidResetToken, i18n.KeyAuthInvalidReset},
	{services.ErrContactNotFound, i18n.KeyContactNotFound},
	{services.ErrShopNotFound, i18n.KeyShopNotFound},
	{services.ErrShopNameTaken, i18n.KeyImportShopNameTaken},
	{services.ErrUnsupportedFeedScheme, i18n.KeyImportInvalidURL},
	{services.ErrStorageNotConfigured, i18n.KeyImportInvalidURL},
	{services.ErrFeedFetch, i18n.KeyImportFetchFailed},
	{services.ErrDuplicateItem, i18n.KeyBasketDuplicateItem},
	{services.ErrUnknownProductInfo, i18n.KeyBasketUnknownProduct},
}

// bindJSON decodes and validates the request body, writing the failure response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.InvalidRequestResponse(c)
		return false
	}

	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		if utils.IsMissingFieldError(err) {
			utils.MissingArgumentsResponse(c)
			return false
		}
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return false
	}
	return true
}

// respondError reports a service error. Unknown errors are logged and become HTTP 500.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var feedErr *services.FeedError
	if errors.As(err, &feedErr) {
		utils.FailureResponse(c, i18n.T(lang, i18n.KeyImportInvalidFeed, feedErr.Reason))
		return
	}

	for _, entry := range failureKeys {
		if errors.Is(err, entry.err) {
			utils.FailureResponse(c, i18n.T(lang, entry.key))
			return
		}
	}

	c.Error(err)
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	utils.InternalErrorResponse(c)
}

// currentUserID returns the authenticated user, answering 401 when there is none.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}
