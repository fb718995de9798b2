package service

import (
	"fmt"
	"strings"
)

var mealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func normalizeMealType(mealType string) string {
	return normalizeName(mealType)
}

func isMealType(mealType string) bool {
	for _, mt := range mealTypes {
		if mt == mealType {
			return true
		}
	}
	return false
}
