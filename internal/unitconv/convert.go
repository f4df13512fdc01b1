package unitconv

import (
	"fmt"
	"math"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
)

// Pure numeric unit conversion by measurement category. No state, no IO;
// the rest of the core consumes this as a collaborator.

type Category string

const (
	Mass        Category = "mass"
	Volume      Category = "volume"
	Temperature Category = "temperature"
	Density     Category = "density"
)

// Factors to the category base unit (g for mass, l for volume).
var massFactors = map[string]float64{
	"mg": 0.001,
	"g":  1,
	"kg": 1000,
	"oz": 28.349523125,
	"lb": 453.59237,
}

var volumeFactors = map[string]float64{
	"ml":   0.001,
	"l":    1,
	"gal":  3.785411784,
	"qt":   0.946352946,
	"floz": 0.0295735295625,
}

// CategoryOf reports the category a unit belongs to, or false for units
// this converter does not know.
func CategoryOf(unit string) (Category, bool) {
	if _, ok := massFactors[unit]; ok {
		return Mass, true
	}
	if _, ok := volumeFactors[unit]; ok {
		return Volume, true
	}
	switch unit {
	case "c", "f", "k":
		return Temperature, true
	case "sg", "plato", "brix":
		return Density, true
	}
	return "", false
}

// Convert converts value from one unit to another within a category.
// Incompatible categories or unknown units fail with ErrConversion.
func Convert(value float64, fromUnit, toUnit string, category Category) (float64, error) {
	if fromUnit == toUnit {
		return value, nil
	}
	switch category {
	case Mass:
		return factorConvert(value, fromUnit, toUnit, massFactors, category)
	case Volume:
		return factorConvert(value, fromUnit, toUnit, volumeFactors, category)
	case Temperature:
		return convertTemperature(value, fromUnit, toUnit)
	case Density:
		return convertDensity(value, fromUnit, toUnit)
	default:
		return 0, fmt.Errorf("unknown category %q: %w", category, apperrors.ErrConversion)
	}
}

func factorConvert(value float64, fromUnit, toUnit string, factors map[string]float64, category Category) (float64, error) {
	from, ok := factors[fromUnit]
	if !ok {
		return 0, fmt.Errorf("unit %q is not a %s unit: %w", fromUnit, category, apperrors.ErrConversion)
	}
	to, ok := factors[toUnit]
	if !ok {
		return 0, fmt.Errorf("unit %q is not a %s unit: %w", toUnit, category, apperrors.ErrConversion)
	}
	return value * from / to, nil
}

func convertTemperature(value float64, fromUnit, toUnit string) (float64, error) {
	var celsius float64
	switch fromUnit {
	case "c":
		celsius = value
	case "f":
		celsius = (value - 32) * 5 / 9
	case "k":
		celsius = value - 273.15
	default:
		return 0, fmt.Errorf("unit %q is not a temperature unit: %w", fromUnit, apperrors.ErrConversion)
	}
	switch toUnit {
	case "c":
		return celsius, nil
	case "f":
		return celsius*9/5 + 32, nil
	case "k":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("unit %q is not a temperature unit: %w", toUnit, apperrors.ErrConversion)
	}
}

// Density conversions use the standard brewing approximations. Brix and
// Plato are treated as equivalent at brewing precision.
func convertDensity(value float64, fromUnit, toUnit string) (float64, error) {
	var plato float64
	switch fromUnit {
	case "plato", "brix":
		plato = value
	case "sg":
		plato = -616.868 + 1111.14*value - 630.272*math.Pow(value, 2) + 135.997*math.Pow(value, 3)
	default:
		return 0, fmt.Errorf("unit %q is not a density unit: %w", fromUnit, apperrors.ErrConversion)
	}
	switch toUnit {
	case "plato", "brix":
		return plato, nil
	case "sg":
		return 1 + plato/(258.6-(plato/258.2)*227.1), nil
	default:
		return 0, fmt.Errorf("unit %q is not a density unit: %w", toUnit, apperrors.ErrConversion)
	}
}
