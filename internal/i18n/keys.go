// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyMissingArguments = "common.missing_arguments"
	KeyInvalidRequest   = "common.invalid_request"
	KeyInternalError    = "common.internal_error"
	KeyRateLimited      = "common.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthInactive           = "auth.inactive"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthInvalidConfirm     = "auth.invalid_confirm_token"
	KeyAuthInvalidReset       = "auth.invalid_reset_token"
	KeyAuthShopOnly           = "auth.shop_only"

	// Users
	KeyUserNotFound = "user.not_found"

	// Contacts
	KeyContactNotFound = "contact.not_found"

	// Catalog
	KeyShopNotFound        = "shop.not_found"
	KeyImportInvalidURL    = "import.invalid_url"
	KeyImportInvalidFeed   = "import.invalid_feed"
	KeyImportFetchFailed   = "import.fetch_failed"
	KeyImportShopNameTaken = "import.shop_name_taken"

	// Basket and orders
	KeyBasketDuplicateItem  = "basket.duplicate_item"
	KeyBasketUnknownProduct = "basket.unknown_product"
	KeyOrderNotFound        = "order.not_found"
	KeyOrderThanks          = "order.thanks"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationPassword = "validation.invalid_password"
)
