// Package category derives the age/gender category label of a runner.
package category

import "github.com/okian/trailboard/internal/domain/types"

// Upper age bounds (exclusive) of each band.
const (
	openMaxAge    = 35
	master1MaxAge = 45
	master2MaxAge = 55
	master3MaxAge = 65
)

// Band prefixes. Ages in [55,65) have no prefix.
const (
	prefixOpen    = "20-34"
	prefixMaster1 = "35-44"
	prefixMaster2 = "45-54"
	prefixMaster3 = ""
	prefixVeteran = "65+"
)

// Classify returns the category label for age and gender: the band prefix
// followed by the raw gender code, e.g. "35-44M". Unknown gender codes are
// appended unchanged.
func Classify(age int, gender types.Gender) string {
	return prefix(age) + string(gender)
}

// Of classifies a runner.
func Of(r types.Runner) string {
	return Classify(r.Age, r.Gender)
}

func prefix(age int) string {
	switch {
	case age < openMaxAge:
		return prefixOpen
	case age < master1MaxAge:
		return prefixMaster1
	case age < master2MaxAge:
		return prefixMaster2
	case age < master3MaxAge:
		return prefixMaster3
	default:
		return prefixVeteran
	}
}
