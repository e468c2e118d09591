package enums

import "fmt"

// IngredientUnit represents the unit an ingredient's stock is tracked in.
type IngredientUnit string

const (
	IngredientUnitMass   IngredientUnit = "mass"
	IngredientUnitVolume IngredientUnit = "volume"
	IngredientUnitEach   IngredientUnit = "each"
)

var validIngredientUnits = []IngredientUnit{
	IngredientUnitMass,
	IngredientUnitVolume,
	IngredientUnitEach,
}

// String implements fmt.Stringer.
func (u IngredientUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known IngredientUnit.
func (u IngredientUnit) IsValid() bool {
	for _, candidate := range validIngredientUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseIngredientUnit converts raw input into an IngredientUnit.
func ParseIngredientUnit(value string) (IngredientUnit, error) {
	for _, candidate := range validIngredientUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ingredient unit %q", value)
}
