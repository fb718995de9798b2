package service

import (
	"fmt"
	"strings"

	"github.com/saadjs/gymbro/internal/model"
)

type unitKind string

const (
	unitKindMass        unitKind = "mass"
	unitKindVolume      unitKind = "volume"
	unitKindTemperature unitKind = "temperature"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg":  {kind: unitKindMass, toBaseUnit: 0.001},
	"g":   {kind: unitKindMass, toBaseUnit: 1},
	"kg":  {kind: unitKindMass, toBaseUnit: 1000},
	"oz":  {kind: unitKindMass, toBaseUnit: 28.349523125},
	"lb":  {kind: unitKindMass, toBaseUnit: 453.59237},
	"lbs": {kind: unitKindMass, toBaseUnit: 453.59237},

	// volume (base = ml)
	"ml":    {kind: unitKindVolume, toBaseUnit: 1},
	"l":     {kind: unitKindVolume, toBaseUnit: 1000},
	"tsp":   {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"tbsp":  {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"cup":   {kind: unitKindVolume, toBaseUnit: 236.5882365},
	"fl-oz": {kind: unitKindVolume, toBaseUnit: 29.5735295625},
	"fl oz": {kind: unitKindVolume, toBaseUnit: 29.5735295625},
}

// systemUnits pairs each metric display unit with its imperial counterpart.
var systemUnits = []struct {
	metric   string
	imperial string
}{
	{metric: "g", imperial: "oz"},
	{metric: "ml", imperial: "fl oz"},
	{metric: "°C", imperial: "°F"},
}

// ConvertMeasurement expresses value in the unit the measurement system
// uses. Units outside g/oz, ml/fl oz and °C/°F pass through unchanged.
func ConvertMeasurement(value float64, unit string, system model.MeasurementSystem) (float64, string) {
	u := strings.TrimSpace(unit)
	for _, pair := range systemUnits {
		var target string
		switch {
		case strings.EqualFold(u, pair.metric) && system == model.Imperial:
			target = pair.imperial
		case strings.EqualFold(u, pair.imperial) && system == model.Metric:
			target = pair.metric
		case strings.EqualFold(u, pair.metric), strings.EqualFold(u, pair.imperial):
			return value, u
		default:
			continue
		}
		converted, err := convertUnit(value, u, target)
		if err != nil {
			return value, u
		}
		return converted, target
	}
	return value, u
}

func FormatMeasurement(value float64, unit string, system model.MeasurementSystem) string {
	v, u := ConvertMeasurement(value, unit, system)
	return fmt.Sprintf("%.1f %s", v, u)
}

func convertUnit(value float64, from, to string) (float64, error) {
	if isTemperature(from) || isTemperature(to) {
		switch {
		case strings.EqualFold(from, "°C") && strings.EqualFold(to, "°F"):
			return value*9/5 + 32, nil
		case strings.EqualFold(from, "°F") && strings.EqualFold(to, "°C"):
			return (value - 32) * 5 / 9, nil
		default:
			return 0, fmt.Errorf("unsupported temperature conversion %s -> %s", from, to)
		}
	}
	if value == 0 {
		return 0, nil
	}
	return ConvertIngredientAmount(value, from, to, 0)
}

func isTemperature(unit string) bool {
	u := strings.ToUpper(strings.TrimSpace(unit))
	return u == "°C" || u == "°F"
}

func ConvertIngredientAmount(value float64, fromUnit, toUnit string, densityGML float64) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}
	from, ok := resolveUnit(fromUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", fromUnit)
	}
	to, ok := resolveUnit(toUnit)
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", toUnit)
	}

	if from.kind == to.kind {
		base := value * from.toBaseUnit
		return base / to.toBaseUnit, nil
	}

	if densityGML <= 0 {
		return 0, fmt.Errorf("density-g-per-ml must be > 0 for mass/volume conversion")
	}

	var grams float64
	switch from.kind {
	case unitKindMass:
		grams = value * from.toBaseUnit
	case unitKindVolume:
		grams = value * from.toBaseUnit * densityGML
	default:
		return 0, fmt.Errorf("unsupported source unit kind")
	}

	switch to.kind {
	case unitKindMass:
		return grams / to.toBaseUnit, nil
	case unitKindVolume:
		return grams / densityGML / to.toBaseUnit, nil
	default:
		return 0, fmt.Errorf("unsupported target unit kind")
	}
}

func resolveUnit(unit string) (unitDef, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	def, ok := unitTable[u]
	return def, ok
}
