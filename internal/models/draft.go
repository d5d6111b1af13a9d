package models

import (
	"fmt"
	"time"

	"github.com/aioutlet/variant-service/pkg/utils"
)

// NoMainVariant marks a draft without a selected main variant
const NoMainVariant = -1

// Variant is a sellable unit for one option combination
type Variant struct {
	SKU     string            `json:"sku" redis:"sku"`
	Price   float64           `json:"price" redis:"price"`
	Stock   int               `json:"stock" redis:"stock"`
	Options OptionCombination `json:"options" redis:"options"`
}

// ProductDraft is the working copy of a product being created or edited
type ProductDraft struct {
	ID          string           `json:"id" redis:"id"`
	OwnerID     string           `json:"ownerId" redis:"owner_id"`
	ProductID   string           `json:"productId,omitempty" redis:"product_id"`
	Name        string           `json:"name" redis:"name"`
	Description string           `json:"description" redis:"description"`
	Brand       string           `json:"brand" redis:"brand"`
	CategoryID  string           `json:"categoryId,omitempty" redis:"category_id"`
	Category    string           `json:"category" redis:"category"`
	Suggestions []string         `json:"suggestions" redis:"suggestions"`
	Price       float64          `json:"price" redis:"price"`
	Stock       int              `json:"stock" redis:"stock"`
	OptionTypes []OptionType     `json:"optionTypes" redis:"option_types"`
	Variants    []Variant        `json:"variants" redis:"variants"`
	MainVariant int              `json:"mainVariant" redis:"main_variant"`
	Mode        PricingStockMode `json:"mode" redis:"mode"`
	CreatedAt   time.Time        `json:"createdAt" redis:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" redis:"updated_at"`
	ExpiresAt   time.Time        `json:"expiresAt" redis:"expires_at"`
}

// NewProductDraft creates an empty draft owned by a merchant
func NewProductDraft(id, ownerID string, ttl time.Duration) *ProductDraft {
	now := time.Now().UTC()
	return &ProductDraft{
		ID:          id,
		OwnerID:     ownerID,
		Suggestions: make([]string, 0),
		OptionTypes: make([]OptionType, 0),
		Variants:    make([]Variant, 0),
		MainVariant: NoMainVariant,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

// SetOptionTypes replaces the selected option types. Existing variants are kept.
func (d *ProductDraft) SetOptionTypes(optionTypes []OptionType) error {
	normalized, err := NormalizeOptionTypes(optionTypes)
	if err != nil {
		return err
	}
	d.OptionTypes = normalized
	d.touch()
	return nil
}

// PendingCombinations returns the generated combinations not yet present as variants
func (d *ProductDraft) PendingCombinations() []OptionCombination {
	universe := GenerateCombinations(d.OptionTypes)
	pending := make([]OptionCombination, 0, len(universe))
	for _, combo := range universe {
		if d.indexOfCombination(combo) == -1 {
			pending = append(pending, combo)
		}
	}
	return pending
}

// AddGeneratedVariants folds the generated combination universe into the
// variant list and returns the appended variants. Existing variants are left
// untouched, combinations already present are skipped, and new variants start
// with zero price and stock. SKU indexes continue from the current list length.
//
// A malformed option set (empty or repeated names) is a caller bug and panics.
func (d *ProductDraft) AddGeneratedVariants() []Variant {
	if err := checkOptionTypes(d.OptionTypes); err != nil {
		panic(fmt.Sprintf("models: malformed option types: %v", err))
	}
	if len(d.OptionTypes) == 0 {
		return []Variant{}
	}

	names := OptionNames(d.OptionTypes)
	pending := d.PendingCombinations()
	added := make([]Variant, 0, len(pending))
	next := len(d.Variants)

	for _, combo := range pending {
		next++
		added = append(added, Variant{
			SKU:     utils.SynthesizeSKU(d.Brand, names, combo, next),
			Price:   0,
			Stock:   0,
			Options: combo,
		})
	}

	if len(added) > 0 {
		d.Variants = append(d.Variants, added...)
		d.touch()
	}
	return added
}

// RemoveVariant removes one variant by position. SKUs of the remaining
// variants are not changed; the main variant selection follows its variant.
func (d *ProductDraft) RemoveVariant(index int) error {
	if index < 0 || index >= len(d.Variants) {
		return ErrVariantNotFound
	}

	d.Variants = append(d.Variants[:index], d.Variants[index+1:]...)

	switch {
	case d.MainVariant == index:
		d.MainVariant = NoMainVariant
	case d.MainVariant > index:
		d.MainVariant--
	}

	d.touch()
	return nil
}

// SelectMainVariant marks the variant whose price represents the product
func (d *ProductDraft) SelectMainVariant(index int) error {
	if index < 0 || index >= len(d.Variants) {
		return ErrVariantNotFound
	}
	d.MainVariant = index
	d.touch()
	return nil
}

// VariantPatch carries optional edits to a single variant
type VariantPatch struct {
	SKU   *string
	Price *float64
	Stock *int
}

// UpdateVariant applies a manual edit, honoring the pricing/stock mode.
// A SKU edit is normalized and never re-triggers synthesis.
func (d *ProductDraft) UpdateVariant(index int, patch VariantPatch) error {
	if index < 0 || index >= len(d.Variants) {
		return ErrVariantNotFound
	}

	edit := d.Mode.Editability()
	if patch.Price != nil || patch.Stock != nil {
		if !d.Mode.Resolved() {
			return ErrModeUnresolved
		}
	}
	if patch.Price != nil {
		if !edit.VariantPrice {
			return fmt.Errorf("%w: variant price", ErrFieldNotEditable)
		}
		if *patch.Price < 0 {
			return ErrInvalidPrice
		}
	}
	if patch.Stock != nil {
		if !edit.VariantStock {
			return fmt.Errorf("%w: variant stock", ErrFieldNotEditable)
		}
		if *patch.Stock < 0 {
			return ErrInvalidStock
		}
	}

	var sku string
	if patch.SKU != nil {
		sku = utils.NormalizeSKU(*patch.SKU)
		if sku == "" {
			return ErrInvalidSKU
		}
	}

	v := &d.Variants[index]
	if patch.SKU != nil {
		v.SKU = sku
	}
	if patch.Price != nil {
		v.Price = *patch.Price
	}
	if patch.Stock != nil {
		v.Stock = *patch.Stock
	}

	d.touch()
	return nil
}

// GlobalPatch carries optional edits to the product level price and stock
type GlobalPatch struct {
	Price *float64
	Stock *int
}

// UpdateGlobal applies product level price/stock edits, honoring the mode.
// A draft without variants is always a single-unit product and accepts both.
func (d *ProductDraft) UpdateGlobal(patch GlobalPatch) error {
	if patch.Price == nil && patch.Stock == nil {
		return nil
	}

	edit := Editability{GlobalPrice: true, GlobalStock: true}
	if len(d.Variants) > 0 {
		if !d.Mode.Resolved() {
			return ErrModeUnresolved
		}
		edit = d.Mode.Editability()
	}

	if patch.Price != nil {
		if !edit.GlobalPrice {
			return fmt.Errorf("%w: product price", ErrFieldNotEditable)
		}
		if *patch.Price < 0 {
			return ErrInvalidPrice
		}
	}
	if patch.Stock != nil {
		if !edit.GlobalStock {
			return fmt.Errorf("%w: product stock", ErrFieldNotEditable)
		}
		if *patch.Stock < 0 {
			return ErrInvalidStock
		}
	}

	if patch.Price != nil {
		d.Price = *patch.Price
	}
	if patch.Stock != nil {
		d.Stock = *patch.Stock
	}
	d.touch()
	return nil
}

// SetHasDifferentPrices answers the price question on the draft's mode
func (d *ProductDraft) SetHasDifferentPrices(differs bool) ModeChange {
	change := d.Mode.SetHasDifferentPrices(differs)
	d.touch()
	return change
}

// SetStockByVariant answers the stock question on the draft's mode
func (d *ProductDraft) SetStockByVariant(byVariant bool) ModeChange {
	change := d.Mode.SetStockByVariant(byVariant)
	d.touch()
	return change
}

// DisplayPrice returns the representative product price: the main variant's
// price when prices differ and it has one, otherwise the global price.
func (d *ProductDraft) DisplayPrice() float64 {
	if d.Mode.HasDifferentPrices == FlagYes &&
		d.MainVariant >= 0 && d.MainVariant < len(d.Variants) &&
		d.Variants[d.MainVariant].Price > 0 {
		return d.Variants[d.MainVariant].Price
	}
	return d.Price
}

// EffectivePrice resolves the price a variant sells at. A zero price, or a
// mode where prices do not differ, falls back to the display price.
func (d *ProductDraft) EffectivePrice(v Variant) float64 {
	if d.Mode.HasDifferentPrices == FlagYes && v.Price > 0 {
		return v.Price
	}
	return d.DisplayPrice()
}

// EffectiveStock resolves a variant's stock; uniform stock uses the global pool
func (d *ProductDraft) EffectiveStock(v Variant) int {
	if d.Mode.StockByVariant == FlagNo {
		return d.Stock
	}
	return v.Stock
}

// DuplicateSKUs lists SKUs that occur on more than one variant, in first-seen order
func (d *ProductDraft) DuplicateSKUs() []string {
	counts := make(map[string]int, len(d.Variants))
	order := make([]string, 0)
	for _, v := range d.Variants {
		counts[v.SKU]++
		if counts[v.SKU] == 2 {
			order = append(order, v.SKU)
		}
	}
	return order
}

// Warnings collects non-blocking notices about the draft
func (d *ProductDraft) Warnings() []string {
	warnings := make([]string, 0)
	for _, sku := range d.DuplicateSKUs() {
		warnings = append(warnings, fmt.Sprintf("sku %s is used by more than one variant", sku))
	}
	return warnings
}

// IsExpired checks if the draft has expired
func (d *ProductDraft) IsExpired() bool {
	return time.Now().UTC().After(d.ExpiresAt)
}

// ExtendExpiry extends the draft expiry time
func (d *ProductDraft) ExtendExpiry(ttl time.Duration) {
	d.ExpiresAt = time.Now().UTC().Add(ttl)
	d.touch()
}

func (d *ProductDraft) indexOfCombination(combo OptionCombination) int {
	for i, v := range d.Variants {
		if v.Options.Equal(combo) {
			return i
		}
	}
	return -1
}

func (d *ProductDraft) touch() {
	d.UpdatedAt = time.Now().UTC()
}
