package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmission(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(d *ProductDraft)
		expectRule   string
		expectErr    error
		expectIndex  int
		expectedPass bool
	}{
		{
			name:        "Single-unit product without price",
			setup:       func(d *ProductDraft) { d.Stock = 3 },
			expectRule:  RuleProductPriceStock,
			expectErr:   ErrPriceRequired,
			expectIndex: -1,
		},
		{
			name:        "Single-unit product without stock",
			setup:       func(d *ProductDraft) { d.Price = 10 },
			expectRule:  RuleProductPriceStock,
			expectErr:   ErrStockRequired,
			expectIndex: -1,
		},
		{
			name: "Single-unit product ready",
			setup: func(d *ProductDraft) {
				d.Price = 10
				d.Stock = 3
			},
			expectedPass: true,
		},
		{
			name: "Variants with unanswered mode",
			setup: func(d *ProductDraft) {
				withVariants(d)
			},
			expectRule:  RuleModeResolved,
			expectErr:   ErrModeUnresolved,
			expectIndex: -1,
		},
		{
			name: "Variant without stock",
			setup: func(d *ProductDraft) {
				withVariants(d)
				d.SetHasDifferentPrices(false)
				d.SetStockByVariant(true)
				d.Variants[0].Stock = 4
			},
			expectRule:  RuleVariantStock,
			expectErr:   ErrVariantStockRequired,
			expectIndex: 1,
		},
		{
			name: "Variant with zero price falls back to product price",
			setup: func(d *ProductDraft) {
				withVariants(d)
				d.SetHasDifferentPrices(true)
				d.SetStockByVariant(true)
				d.Variants[0].Stock = 4
				d.Variants[1].Stock = 2
				d.Variants[0].Price = 65
			},
			expectedPass: true,
		},
		{
			name: "Variant with no usable price",
			setup: func(d *ProductDraft) {
				withVariants(d)
				d.Price = 0
				d.SetHasDifferentPrices(true)
				d.SetStockByVariant(true)
				d.Variants[0].Stock = 4
				d.Variants[1].Stock = 2
				d.Variants[0].Price = 65
			},
			expectRule:  RuleVariantPrice,
			expectErr:   ErrVariantPriceMissing,
			expectIndex: 1,
		},
		{
			name: "Negative variant price",
			setup: func(d *ProductDraft) {
				withVariants(d)
				d.SetHasDifferentPrices(true)
				d.SetStockByVariant(true)
				d.Variants[0].Stock = 4
				d.Variants[1].Stock = 2
				d.Variants[0].Price = -1
			},
			expectRule:  RuleVariantPrice,
			expectErr:   ErrInvalidPrice,
			expectIndex: 0,
		},
		{
			name: "Uniform stock uses product stock",
			setup: func(d *ProductDraft) {
				withVariants(d)
				d.Stock = 8
				d.SetHasDifferentPrices(false)
				d.SetStockByVariant(false)
			},
			expectedPass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewProductDraft("draft-1", "merchant-1", time.Hour)
			tt.setup(d)

			err := ValidateSubmission(d)

			if tt.expectedPass {
				assert.NoError(t, err)
				return
			}
			se, ok := AsSubmissionError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectRule, se.Rule)
			assert.Equal(t, tt.expectIndex, se.VariantIndex)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestProductDraft_ToSubmission(t *testing.T) {
	d := NewProductDraft("draft-1", "merchant-1", time.Hour)
	d.Name = "Air Zoom"
	withVariants(d)
	d.SetHasDifferentPrices(true)
	d.SetStockByVariant(true)
	d.Variants[0].Price = 65
	d.Variants[0].Stock = 4
	d.Variants[1].Stock = 2
	require.NoError(t, d.SelectMainVariant(0))
	require.NoError(t, ValidateSubmission(d))

	sub := d.ToSubmission()

	assert.Equal(t, "Air Zoom", sub.Name)
	assert.Equal(t, 65.0, sub.Price)
	assert.Equal(t, 6, sub.Stock)
	assert.True(t, sub.HasDifferentPrices)
	assert.True(t, sub.StockByVariant)
	assert.Equal(t, d.Variants[0].SKU, sub.MainVariantSKU)
	require.Len(t, sub.Variants, 2)
	assert.Equal(t, 65.0, sub.Variants[0].Price)
	assert.Equal(t, 65.0, sub.Variants[1].Price)
}

func TestProductDraft_ToSubmission_UniformStock(t *testing.T) {
	d := NewProductDraft("draft-1", "merchant-1", time.Hour)
	withVariants(d)
	d.Stock = 9
	d.SetHasDifferentPrices(false)
	d.SetStockByVariant(false)

	sub := d.ToSubmission()

	assert.Equal(t, 9, sub.Stock)
	for _, v := range sub.Variants {
		assert.Equal(t, 9, v.Stock)
		assert.Equal(t, 50.0, v.Price)
	}
}

func withVariants(d *ProductDraft) {
	d.Brand = "Nike"
	d.Price = 50
	d.OptionTypes = []OptionType{{Name: "Color", Values: []string{"Red", "Blue"}}}
	d.AddGeneratedVariants()
}
