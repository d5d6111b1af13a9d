package models

// GenerateCombinations expands option types into their Cartesian product.
// The first option type varies slowest and values keep entry order, so the
// output is identical for identical input. No option types, or any option
// type without values, yields an empty result.
func GenerateCombinations(optionTypes []OptionType) []OptionCombination {
	if len(optionTypes) == 0 {
		return []OptionCombination{}
	}

	total := CombinationCount(optionTypes)
	if total == 0 {
		return []OptionCombination{}
	}

	combos := make([]OptionCombination, 0, total)
	current := make(OptionCombination, len(optionTypes))

	var expand func(depth int)
	expand = func(depth int) {
		if depth == len(optionTypes) {
			combos = append(combos, current.Clone())
			return
		}
		ot := optionTypes[depth]
		for _, value := range ot.Values {
			current[ot.Name] = value
			expand(depth + 1)
		}
	}
	expand(0)

	return combos
}

// CombinationCount returns the size of the Cartesian product without building it
func CombinationCount(optionTypes []OptionType) int {
	if len(optionTypes) == 0 {
		return 0
	}
	total := 1
	for _, ot := range optionTypes {
		total *= len(ot.Values)
		if total == 0 {
			return 0
		}
	}
	return total
}
