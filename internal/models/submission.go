package models

import (
	"errors"
	"fmt"
)

// Submission rule identifiers
const (
	RuleProductPriceStock = "product_price_stock"
	RuleModeResolved      = "mode_resolved"
	RuleVariantStock      = "variant_stock"
	RuleVariantPrice      = "variant_price"
)

// SubmissionError is a recoverable validation failure naming the rule and entity
type SubmissionError struct {
	Rule         string `json:"rule"`
	Field        string `json:"field"`
	VariantIndex int    `json:"variantIndex"`
	SKU          string `json:"sku,omitempty"`
	Err          error  `json:"-"`
}

func (e *SubmissionError) Error() string {
	if e.VariantIndex >= 0 {
		return fmt.Sprintf("%s: variant %d (%s): %v", e.Rule, e.VariantIndex, e.SKU, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Rule, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// AsSubmissionError extracts a SubmissionError from an error chain
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ValidateSubmission is the final gate before a draft is handed off.
// The first failing rule wins.
//
// Without variants the product itself needs a price and stock. With variants
// the mode must be answered and every variant needs a positive effective stock.
// A variant price of zero falls back to the display price; only a negative
// price, or a variant left with no positive price after the fallback, fails.
// Name and description bounds are checked by the caller.
func ValidateSubmission(d *ProductDraft) error {
	if len(d.Variants) == 0 {
		if d.Price <= 0 {
			return &SubmissionError{Rule: RuleProductPriceStock, Field: "price", VariantIndex: -1, Err: ErrPriceRequired}
		}
		if d.Stock <= 0 {
			return &SubmissionError{Rule: RuleProductPriceStock, Field: "stock", VariantIndex: -1, Err: ErrStockRequired}
		}
		return nil
	}

	if !d.Mode.Resolved() {
		return &SubmissionError{Rule: RuleModeResolved, Field: "mode", VariantIndex: -1, Err: ErrModeUnresolved}
	}

	for i, v := range d.Variants {
		if d.EffectiveStock(v) <= 0 {
			return &SubmissionError{Rule: RuleVariantStock, Field: "stock", VariantIndex: i, SKU: v.SKU, Err: ErrVariantStockRequired}
		}
	}

	for i, v := range d.Variants {
		if v.Price < 0 {
			return &SubmissionError{Rule: RuleVariantPrice, Field: "price", VariantIndex: i, SKU: v.SKU, Err: ErrInvalidPrice}
		}
		if d.EffectivePrice(v) <= 0 {
			return &SubmissionError{Rule: RuleVariantPrice, Field: "price", VariantIndex: i, SKU: v.SKU, Err: ErrVariantPriceMissing}
		}
	}

	return nil
}

// ProductSubmission is the plain structure handed to the product repository
type ProductSubmission struct {
	ProductID          string             `json:"productId,omitempty"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Brand              string             `json:"brand"`
	CategoryID         string             `json:"categoryId,omitempty"`
	Category           string             `json:"category"`
	Price              float64            `json:"price"`
	Stock              int                `json:"stock"`
	HasDifferentPrices bool               `json:"hasDifferentPrices"`
	StockByVariant     bool               `json:"stockByVariant"`
	MainVariantSKU     string             `json:"mainVariantSku,omitempty"`
	OptionTypes        []OptionType       `json:"optionTypes"`
	Variants           []SubmittedVariant `json:"variants"`
}

// SubmittedVariant carries a variant with its resolved price and stock
type SubmittedVariant struct {
	SKU     string            `json:"sku"`
	Price   float64           `json:"price"`
	Stock   int               `json:"stock"`
	Options OptionCombination `json:"options"`
}

// ToSubmission builds the hand-off payload with effective prices and stock.
// Callers validate the draft first.
func (d *ProductDraft) ToSubmission() ProductSubmission {
	sub := ProductSubmission{
		ProductID:          d.ProductID,
		Name:               d.Name,
		Description:        d.Description,
		Brand:              d.Brand,
		CategoryID:         d.CategoryID,
		Category:           d.Category,
		Price:              d.DisplayPrice(),
		Stock:              d.Stock,
		HasDifferentPrices: d.Mode.HasDifferentPrices == FlagYes,
		StockByVariant:     d.Mode.StockByVariant == FlagYes,
		OptionTypes:        d.OptionTypes,
		Variants:           make([]SubmittedVariant, 0, len(d.Variants)),
	}

	if d.MainVariant >= 0 && d.MainVariant < len(d.Variants) {
		sub.MainVariantSKU = d.Variants[d.MainVariant].SKU
	}

	for _, v := range d.Variants {
		sub.Variants = append(sub.Variants, SubmittedVariant{
			SKU:     v.SKU,
			Price:   d.EffectivePrice(v),
			Stock:   d.EffectiveStock(v),
			Options: v.Options,
		})
	}

	if len(d.Variants) > 0 && sub.StockByVariant {
		total := 0
		for _, v := range sub.Variants {
			total += v.Stock
		}
		sub.Stock = total
	}

	return sub
}
