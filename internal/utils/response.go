// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/javajoker/orders-backend/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Every response body carries "Status"; failures add "Errors". Logical failures are
// reported with HTTP 200, only transport-level problems use other status codes.
const (
	statusField = "Status"
	errorsField = "Errors"
)

func SuccessResponse(c *gin.Context, extra gin.H) {
	body := gin.H{statusField: true}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(http.StatusOK, body)
}

func PaginatedResponse(c *gin.Context, key string, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponse(c, gin.H{
		key: result.Data,
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

func ErrorResponse(c *gin.Context, statusCode int, errs interface{}) {
	c.JSON(statusCode, gin.H{
		statusField: false,
		errorsField: errs,
	})
}

// FailureResponse reports a logical failure of the requested operation.
func FailureResponse(c *gin.Context, errs interface{}) {
	ErrorResponse(c, http.StatusOK, errs)
}

func MissingArgumentsResponse(c *gin.Context) {
	FailureResponse(c, i18n.T(GetLangFromContext(c), i18n.KeyMissingArguments))
}

func InvalidRequestResponse(c *gin.Context) {
	FailureResponse(c, i18n.T(GetLangFromContext(c), i18n.KeyInvalidRequest))
}

func ValidationErrorResponse(c *gin.Context, errors map[string][]string) {
	FailureResponse(c, errors)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message)
}

func TooManyRequestsResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusTooManyRequests, i18n.T(GetLangFromContext(c), i18n.KeyRateLimited))
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, i18n.T(GetLangFromContext(c), i18n.KeyInternalError))
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

func GetUserTypeFromContext(c *gin.Context) (string, bool) {
	if userType, exists := c.Get("user_type"); exists {
		if userTypeStr, ok := userType.(string); ok {
			return userTypeStr, true
		}
	}
	return "", false
}
