package models

import "errors"

// Custom errors
var (
	ErrDraftNotFound       = errors.New("draft not found")
	ErrDraftExpired        = errors.New("draft has expired")
	ErrDraftLocked         = errors.New("draft is currently being modified, please try again")
	ErrVariantNotFound     = errors.New("variant not found in draft")
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrEmptyOptionName     = errors.New("option type name is required")
	ErrDuplicateOptionType = errors.New("duplicate option type")
	ErrTooManyOptionTypes  = errors.New("maximum number of option types exceeded")
	ErrTooManyOptionValues = errors.New("maximum number of values per option type exceeded")
	ErrTooManyVariants     = errors.New("maximum number of variants exceeded")
	ErrModeUnresolved      = errors.New("pricing and stock mode must be answered first")
	ErrFieldNotEditable    = errors.New("field is not editable in the current pricing and stock mode")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInvalidStock        = errors.New("stock must not be negative")
	ErrInvalidSKU          = errors.New("sku must contain at least one letter or digit")
	ErrUpstream            = errors.New("downstream service unavailable")

	// Submission rule failures
	ErrPriceRequired        = errors.New("product price must be greater than zero")
	ErrStockRequired        = errors.New("product stock must be greater than zero")
	ErrVariantStockRequired = errors.New("variant stock must be greater than zero")
	ErrVariantPriceMissing  = errors.New("variant has no usable price")
)
