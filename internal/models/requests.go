package models

// CreateDraftRequest represents a request to open a new product draft
type CreateDraftRequest struct {
	Name        string `json:"name" binding:"max=120"`
	Description string `json:"description" binding:"max=2000"`
	Brand       string `json:"brand" binding:"max=60"`
	CategoryID  string `json:"categoryId"`
	Category    string `json:"category" binding:"max=120"`
}

// UpdateDraftRequest represents a partial update of product level fields
type UpdateDraftRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=120"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Brand       *string  `json:"brand" binding:"omitempty,max=60"`
	CategoryID  *string  `json:"categoryId"`
	Category    *string  `json:"category" binding:"omitempty,max=120"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
}

// SetOptionTypesRequest replaces the draft's option types
type SetOptionTypesRequest struct {
	OptionTypes []OptionType `json:"optionTypes" binding:"dive"`
}

// SetModeRequest answers one or both pricing/stock questions.
// When both are set the price answer is applied first.
type SetModeRequest struct {
	HasDifferentPrices *bool `json:"hasDifferentPrices"`
	StockByVariant     *bool `json:"stockByVariant"`
}

// UpdateVariantRequest represents a manual edit of one variant
type UpdateVariantRequest struct {
	SKU   *string  `json:"sku" binding:"omitempty,max=64"`
	Price *float64 `json:"price" binding:"omitempty,min=0"`
	Stock *int     `json:"stock" binding:"omitempty,min=0"`
}

// SelectMainVariantRequest selects the representative variant
type SelectMainVariantRequest struct {
	Index *int `json:"index" binding:"required,min=0"`
}

// ProductInfo represents a stored product as returned by the product service
type ProductInfo struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Brand       string       `json:"brand"`
	CategoryID  string       `json:"categoryId"`
	Category    string       `json:"category"`
	Price       float64      `json:"price"`
	Stock       int          `json:"stock"`
	OptionTypes []OptionType `json:"optionTypes"`
	Variants    []Variant    `json:"variants"`
}

// DraftView is a draft together with its derived editing state
type DraftView struct {
	*ProductDraft
	Editability  Editability `json:"editability"`
	DisplayPrice float64     `json:"displayPrice"`
	Warnings     []string    `json:"warnings"`
}

// NewDraftView derives the editing state of a draft
func NewDraftView(d *ProductDraft, extraWarnings ...string) *DraftView {
	warnings := append([]string{}, extraWarnings...)
	warnings = append(warnings, d.Warnings()...)
	return &DraftView{
		ProductDraft: d,
		Editability:  d.Mode.Editability(),
		DisplayPrice: d.DisplayPrice(),
		Warnings:     warnings,
	}
}

// Suggestion is the outcome of a category option lookup
type Suggestion struct {
	Category string   `json:"category"`
	Options  []string `json:"options"`
	Matched  bool     `json:"matched"`
	Distance float64  `json:"distance"`
}

// DraftResponse represents the response format for draft operations
type DraftResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *DraftView `json:"data,omitempty"`
}

// GenerateResponse reports the variants appended by a generate action
type GenerateResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Added   []Variant  `json:"added"`
	Data    *DraftView `json:"data,omitempty"`
}

// SuggestionResponse represents the response format for suggestion lookups
type SuggestionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    *Suggestion `json:"data,omitempty"`
}

// SubmitResult is the outcome of a successful hand-off
type SubmitResult struct {
	ProductID string            `json:"productId"`
	Product   ProductSubmission `json:"product"`
}

// SubmitResponse represents the response format for draft submission
type SubmitResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *SubmitResult `json:"data,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	Error         string           `json:"error,omitempty"`
	Validation    *SubmissionError `json:"validation,omitempty"`
	CorrelationID string           `json:"correlationId,omitempty"`
}
