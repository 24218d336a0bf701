package engine

import "github.com/oarstack/regatta/models"

// genderLetter is the gender mark used inside event codes.
func genderLetter(gender string) string {
	switch gender {
	case models.GenderMen:
		return "M"
	case models.GenderWomen:
		return "W"
	default:
		return "Mix"
	}
}

// EventCode derives the display code for a category/boat-class pairing.
// Senior-like categories read "M1x", "LW2x"; other categories prefix their
// abbreviation with the lightweight mark before the gender letter ("BLM1x").
// Coastal and beach boat codes already carry gender and the C prefix, so
// they pass through untouched for seniors and only gain the category prefix
// otherwise. Pure display logic, reproducible from its two inputs.
func EventCode(cat *models.Category, boat *models.BoatClass) string {
	if boat.Coastal() {
		if cat.SeniorLike() {
			return boat.Code
		}
		return cat.Abbrev + boat.Code
	}

	code := genderLetter(cat.Gender) + boat.Code
	if boat.Lightweight() {
		code = "L" + code
	}
	if cat.SeniorLike() {
		return code
	}
	return cat.Abbrev + code
}
