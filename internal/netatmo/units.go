package netatmo

import (
	"fmt"
	"sort"
)

// Unit categories found in the user's administrative preferences
const (
	UnitCategorySystem   = "unit"
	UnitCategoryWind     = "windunit"
	UnitCategoryPressure = "pressureunit"
)

// unitLabels is the fixed code-to-label table for each unit category
var unitLabels = map[string]map[int]string{
	UnitCategorySystem: {
		0: "metric",
		1: "imperial",
	},
	UnitCategoryWind: {
		0: "kph",
		1: "mph",
		2: "ms",
		3: "beaufort",
		4: "knot",
	},
	UnitCategoryPressure: {
		0: "mbar",
		1: "inHg",
		2: "mmHg",
	},
}

// IsUnitCategory reports whether key names a known unit category
func IsUnitCategory(key string) bool {
	_, ok := unitLabels[key]
	return ok
}

// UnitCategories returns the known unit category keys in sorted order
func UnitCategories() []string {
	keys := make([]string, 0, len(unitLabels))
	for k := range unitLabels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnitLabel returns the label for code in category. ok is false when either
// the category or the code is unknown.
func UnitLabel(category string, code int) (label string, ok bool) {
	labels, known := unitLabels[category]
	if !known {
		return "", false
	}
	label, ok = labels[code]
	return label, ok
}

// unitLabelOrUnknown never fails; codes outside the table render as "unknown(<code>)"
func unitLabelOrUnknown(category string, code int) string {
	if label, ok := UnitLabel(category, code); ok {
		return label
	}
	return fmt.Sprintf("unknown(%d)", code)
}
