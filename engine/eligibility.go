package engine

import (
	"time"

	"github.com/oarstack/regatta/models"
)

// Overrides are organiser-granted relaxations of the eligibility rules.
// Each one must be passed explicitly; the engine never bypasses on its own.
type Overrides struct {
	AllowJuniorsInSenior  bool
	AllowMastersInSenior  bool
	BypassAgeVerification bool
}

// mastersAge is the age from which an athlete counts as a master even
// without the explicit roster flag.
const mastersAge = 27

const birthDateLayout = "2006-01-02"

// AgeInSeason returns the athlete's competition age for the season: the age
// reached by December 31 of the season year. Nil when the birth date is
// absent or unparseable, in which case age checks must be skipped.
func AgeInSeason(birthDate *string, seasonYear int) *int {
	if birthDate == nil || *birthDate == "" {
		return nil
	}
	born, err := time.Parse(birthDateLayout, *birthDate)
	if err != nil {
		return nil
	}
	age := seasonYear - born.Year()
	// Cutoff is Dec 31, so the usual birthday decrement can never apply;
	// guard against dates past the cutoff anyway.
	cutoff := time.Date(seasonYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	if born.AddDate(age, 0, 0).After(cutoff) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}

// isMaster reports whether the athlete counts as a master: explicit roster
// flag, or competition age of 27 and over.
func isMaster(a *models.Athlete, age *int) bool {
	if a.IsMaster {
		return true
	}
	return age != nil && *age >= mastersAge
}

// CheckEligibility screens an athlete against a category for the given
// season. The returned failures are advisory: the caller decides whether to
// block admission. An empty slice means eligible.
func CheckEligibility(a *models.Athlete, cat *models.Category, seasonYear int, ov Overrides) []error {
	var fails []error

	age := AgeInSeason(a.BirthDate, seasonYear)

	seniorException := cat.SeniorLike() &&
		((ov.AllowJuniorsInSenior && a.IsJunior) ||
			(ov.AllowMastersInSenior && isMaster(a, age)))

	if cat.Gender != models.GenderMixed && a.Gender != cat.Gender && !seniorException {
		fails = append(fails, ErrGenderMismatch)
	}

	if ov.BypassAgeVerification || age == nil {
		return fails
	}

	if cat.MinAge != nil && *age < *cat.MinAge {
		fails = append(fails, ErrTooYoung)
	}
	if cat.MaxAge != nil && *age > *cat.MaxAge && !seniorException {
		fails = append(fails, ErrTooOld)
	}

	return fails
}
