// internal/services/errors.go
package services

import "errors"

var (
	ErrUserExists          = errors.New("user with this email already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInactiveAccount     = errors.New("account is not activated")
	ErrInvalidConfirmToken = errors.New("invalid confirmation token or email")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")

	ErrContactNotFound = errors.New("contact not found")

	ErrShopNotFound          = errors.New("shop not found")
	ErrShopNameTaken         = errors.New("shop name is owned by another partner")
	ErrFeedFetch             = errors.New("failed to fetch catalog feed")
	ErrUnsupportedFeedScheme = errors.New("unsupported feed URL scheme")
	ErrStorageNotConfigured  = errors.New("object storage is not configured")

	ErrDuplicateItem      = errors.New("product is already in the basket")
	ErrUnknownProductInfo = errors.New("unknown product listing")
)

// FeedError describes why a catalog feed was rejected. It is returned before any
// row of the catalog has been touched, or causes the whole import to roll back.
type FeedError struct {
	Reason string
}

func (e *FeedError) Error() string {
	return "invalid catalog feed: " + e.Reason
}
