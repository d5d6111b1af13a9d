package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizeSKU(t *testing.T) {
	names := []string{"Size", "Color"}

	tests := []struct {
		name     string
		brand    string
		values   map[string]string
		index    int
		expected string
	}{
		{"Brand and two options", "Nike", map[string]string{"Size": "Small", "Color": "Red"}, 1, "NIK-SMA-RED-1"},
		{"Short values kept whole", "HP", map[string]string{"Size": "XL", "Color": "Blue"}, 12, "HP-XL-BLU-12"},
		{"Empty brand uses default prefix", "", map[string]string{"Size": "Medium", "Color": "Red"}, 3, "PRD-MED-RED-3"},
		{"Symbol-only brand uses default prefix", "+++", map[string]string{"Size": "Medium", "Color": "Red"}, 3, "PRD-MED-RED-3"},
		{"Punctuation stripped", "Dr. Martens", map[string]string{"Size": "4-5", "Color": "Off White"}, 2, "DRM-45-OFF-2"},
		{"Value without usable characters is skipped", "Nike", map[string]string{"Size": "!!", "Color": "Red"}, 7, "NIK-RED-7"},
		{"Accents folded before truncation", "Ñandú", map[string]string{"Size": "Único", "Color": "Marrón"}, 4, "NAN-UNI-MAR-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SynthesizeSKU(tt.brand, names, tt.values, tt.index))
		})
	}
}

func TestNormalizeSKU(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"nik-sma-red-1", "NIK-SMA-RED-1"},
		{"  my sku 01 ", "MY-SKU-01"},
		{"a--b", "A-B"},
		{"-abc-", "ABC"},
		{"x#y$z", "XYZ"},
		{"###", ""},
		{"talla única", "TALLA-UNICA"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSKU(tt.input))
		})
	}
}

func TestSKUFragment(t *testing.T) {
	assert.Equal(t, "NIK", SKUFragment("nike"))
	assert.Equal(t, "AB", SKUFragment("a b"))
	assert.Equal(t, "", SKUFragment(""))
	assert.Equal(t, "NIC", SKUFragment("Nícolas"))
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "Nandu", FoldDiacritics("Ñandú"))
	assert.Equal(t, "Electronica", FoldDiacritics("Electrónica"))
	assert.Equal(t, "plain", FoldDiacritics("plain"))
}
