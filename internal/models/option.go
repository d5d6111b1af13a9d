package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OptionType is a configurable product attribute with its ordered values
type OptionType struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// OptionCombination assigns exactly one value to every selected option type
type OptionCombination map[string]string

// Equal reports whether two combinations hold the same keys and values
func (c OptionCombination) Equal(other OptionCombination) bool {
	if len(c) != len(other) {
		return false
	}
	for name, value := range c {
		if v, ok := other[name]; !ok || v != value {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the combination
func (c OptionCombination) Clone() OptionCombination {
	out := make(OptionCombination, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// NormalizeOptionValue trims and collapses whitespace and capitalizes the first letter.
// The remainder of the value is kept as typed so "XL" stays "XL".
func NormalizeOptionValue(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(r)) + value[size:]
}

// NormalizeOptionTypes normalizes names and values as entered by a merchant.
// Empty values and case-insensitive duplicate values are dropped, first wins.
// Duplicate or empty option names are rejected.
func NormalizeOptionTypes(input []OptionType) ([]OptionType, error) {
	out := make([]OptionType, 0, len(input))
	seenNames := make(map[string]struct{}, len(input))

	for _, ot := range input {
		name := NormalizeOptionValue(ot.Name)
		if name == "" {
			return nil, ErrEmptyOptionName
		}
		key := strings.ToLower(name)
		if _, dup := seenNames[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOptionType, name)
		}
		seenNames[key] = struct{}{}

		values := make([]string, 0, len(ot.Values))
		seenValues := make(map[string]struct{}, len(ot.Values))
		for _, raw := range ot.Values {
			v := NormalizeOptionValue(raw)
			if v == "" {
				continue
			}
			vk := strings.ToLower(v)
			if _, dup := seenValues[vk]; dup {
				continue
			}
			seenValues[vk] = struct{}{}
			values = append(values, v)
		}

		out = append(out, OptionType{Name: name, Values: values})
	}

	return out, nil
}

// checkOptionTypes reports a malformed option set: empty or repeated names.
func checkOptionTypes(optionTypes []OptionType) error {
	seen := make(map[string]struct{}, len(optionTypes))
	for _, ot := range optionTypes {
		if ot.Name == "" {
			return ErrEmptyOptionName
		}
		if _, dup := seen[ot.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateOptionType, ot.Name)
		}
		seen[ot.Name] = struct{}{}
	}
	return nil
}

// OptionNames returns the option type names in selection order
func OptionNames(optionTypes []OptionType) []string {
	names := make([]string, len(optionTypes))
	for i, ot := range optionTypes {
		names[i] = ot.Name
	}
	return names
}
