package models

import (
	"fmt"
)

// Flag is a tri-state answer to one of the pricing/stock questions
type Flag int8

const (
	FlagUnanswered Flag = iota
	FlagYes
	FlagNo
)

// FlagOf converts a boolean answer into a Flag
func FlagOf(b bool) Flag {
	if b {
		return FlagYes
	}
	return FlagNo
}

func (f Flag) String() string {
	switch f {
	case FlagYes:
		return "yes"
	case FlagNo:
		return "no"
	default:
		return "unanswered"
	}
}

// MarshalText encodes the flag as "yes", "no" or "unanswered"
func (f Flag) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes "yes", "no", "unanswered" or an empty string
func (f *Flag) UnmarshalText(text []byte) error {
	switch string(text) {
	case "yes", "true":
		*f = FlagYes
	case "no", "false":
		*f = FlagNo
	case "unanswered", "":
		*f = FlagUnanswered
	default:
		return fmt.Errorf("invalid flag value %q", string(text))
	}
	return nil
}

// Resolved reports whether the merchant has answered
func (f Flag) Resolved() bool {
	return f == FlagYes || f == FlagNo
}

// ModeWarningStockForced is surfaced when per-variant stock was forced on
const ModeWarningStockForced = "stock must be tracked per variant when prices differ by variant; stock by variant was set to yes"

// PricingStockMode tracks whether price and stock vary by variant.
// The combination (prices differ, uniform stock) is never stored.
type PricingStockMode struct {
	HasDifferentPrices Flag `json:"hasDifferentPrices"`
	StockByVariant     Flag `json:"stockByVariant"`
}

// ModeChange is the outcome of setting one of the flags
type ModeChange struct {
	Mode          PricingStockMode `json:"mode"`
	AutoCorrected bool             `json:"autoCorrected"`
	Warning       string           `json:"warning,omitempty"`
}

// SetHasDifferentPrices answers the price question.
// Answering yes while stock is uniform forces stock by variant.
func (m *PricingStockMode) SetHasDifferentPrices(differs bool) ModeChange {
	m.HasDifferentPrices = FlagOf(differs)
	return m.enforce()
}

// SetStockByVariant answers the stock question.
// Answering no while prices differ is corrected back to yes.
func (m *PricingStockMode) SetStockByVariant(byVariant bool) ModeChange {
	m.StockByVariant = FlagOf(byVariant)
	return m.enforce()
}

func (m *PricingStockMode) enforce() ModeChange {
	change := ModeChange{}
	if m.HasDifferentPrices == FlagYes && m.StockByVariant == FlagNo {
		m.StockByVariant = FlagYes
		change.AutoCorrected = true
		change.Warning = ModeWarningStockForced
	}
	change.Mode = *m
	return change
}

// Resolved reports whether both questions are answered
func (m PricingStockMode) Resolved() bool {
	return m.HasDifferentPrices.Resolved() && m.StockByVariant.Resolved()
}

// Editability lists which price/stock fields may be edited and where
type Editability struct {
	GlobalPrice  bool `json:"globalPrice"`
	GlobalStock  bool `json:"globalStock"`
	VariantPrice bool `json:"variantPrice"`
	VariantStock bool `json:"variantStock"`
}

// Editability resolves the mode matrix. Nothing is editable until both
// questions are answered.
func (m PricingStockMode) Editability() Editability {
	if !m.Resolved() {
		return Editability{}
	}
	differs := m.HasDifferentPrices == FlagYes
	byVariant := m.StockByVariant == FlagYes || differs
	return Editability{
		GlobalPrice:  !differs,
		GlobalStock:  !byVariant,
		VariantPrice: differs,
		VariantStock: byVariant,
	}
}

// InferModeFromExistingVariants guesses both flags for a product opened for editing.
//
// No variants means a single-unit product: (no, no). With variants, stock is
// always tracked per variant, since each stored variant carries its own stock.
// Prices differ when the effective variant prices (zero falls back to the
// global price) take more than one distinct value. A single variant, or
// variants all priced like the product, is read as uniform pricing.
func InferModeFromExistingVariants(globalPrice float64, variants []Variant) PricingStockMode {
	if len(variants) == 0 {
		return PricingStockMode{HasDifferentPrices: FlagNo, StockByVariant: FlagNo}
	}

	distinct := make(map[float64]struct{}, len(variants))
	for _, v := range variants {
		price := v.Price
		if price <= 0 {
			price = globalPrice
		}
		distinct[price] = struct{}{}
	}

	return PricingStockMode{
		HasDifferentPrices: FlagOf(len(distinct) > 1),
		StockByVariant:     FlagYes,
	}
}

// InferMainVariant picks the main variant for a product opened for editing:
// the first variant whose effective price (zero falls back to the global
// price) equals the product price, else the first variant. It returns -1
// when there are no variants.
func InferMainVariant(globalPrice float64, variants []Variant) int {
	if len(variants) == 0 {
		return -1
	}
	for i, v := range variants {
		price := v.Price
		if price <= 0 {
			price = globalPrice
		}
		if price == globalPrice {
			return i
		}
	}
	return 0
}
