package utils

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultSKUPrefix is used when the brand is empty or has no usable characters
	DefaultSKUPrefix = "PRD"

	skuFragmentLength = 3
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)
	nonSKUChars     = regexp.MustCompile(`[^A-Z0-9-]+`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
)

// SynthesizeSKU builds a variant SKU from a brand prefix, one fragment per
// option value in selection order, and a running index.
// Example: "Nike", [Size Color], {Size: Small, Color: Red}, 1 = "NIK-SMA-RED-1"
func SynthesizeSKU(brand string, optionNames []string, values map[string]string, index int) string {
	prefix := SKUFragment(brand)
	if prefix == "" {
		prefix = DefaultSKUPrefix
	}

	parts := make([]string, 0, len(optionNames)+2)
	parts = append(parts, prefix)
	for _, name := range optionNames {
		// A value with no alphanumeric characters contributes nothing
		if fragment := SKUFragment(values[name]); fragment != "" {
			parts = append(parts, fragment)
		}
	}
	parts = append(parts, strconv.Itoa(index))

	return strings.Join(parts, "-")
}

// SKUFragment returns the first three characters of a cleaned SKU part
func SKUFragment(s string) string {
	clean := CleanSKUPart(s)
	if len(clean) > skuFragmentLength {
		return clean[:skuFragmentLength]
	}
	return clean
}

// CleanSKUPart cleans a string for use in SKU by folding accents, removing
// special characters and converting to uppercase
func CleanSKUPart(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToUpper(FoldDiacritics(s)), "")
}

// NormalizeSKU sanitizes a manually entered SKU: uppercase, only letters,
// digits and single dashes, no leading or trailing dash
func NormalizeSKU(s string) string {
	s = strings.ToUpper(FoldDiacritics(strings.TrimSpace(s)))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSKUChars.ReplaceAllString(s, "")
	s = repeatedDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
