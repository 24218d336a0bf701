package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarstack/regatta/models"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestAgeInSeason(t *testing.T) {
	age := AgeInSeason(strp("2008-03-15"), 2026)
	require.NotNil(t, age)
	assert.Equal(t, 18, *age)

	// Born Dec 31 still reaches the age within the season.
	age = AgeInSeason(strp("2008-12-31"), 2026)
	require.NotNil(t, age)
	assert.Equal(t, 18, *age)

	assert.Nil(t, AgeInSeason(nil, 2026))
	assert.Nil(t, AgeInSeason(strp(""), 2026))
	assert.Nil(t, AgeInSeason(strp("not-a-date"), 2026))
	assert.Nil(t, AgeInSeason(strp("2030-01-01"), 2026))
}

func juniorCategory() *models.Category {
	return &models.Category{
		Title:  "Junior B",
		Abbrev: "B",
		Gender: models.GenderMen,
		MinAge: intp(15),
		MaxAge: intp(16),
	}
}

func seniorCategory() *models.Category {
	return &models.Category{Title: "Senior", Abbrev: "S", Gender: models.GenderMen}
}

func TestCheckEligibilityAgeBounds(t *testing.T) {
	cat := juniorCategory()

	atMax := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("2010-06-01")} // 16 in 2026
	assert.Empty(t, CheckEligibility(atMax, cat, 2026, Overrides{}))

	overMax := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("2009-06-01")} // 17 in 2026
	fails := CheckEligibility(overMax, cat, 2026, Overrides{})
	require.Len(t, fails, 1)
	assert.ErrorIs(t, fails[0], ErrTooOld)

	underMin := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("2013-06-01")} // 13 in 2026
	fails = CheckEligibility(underMin, cat, 2026, Overrides{})
	require.Len(t, fails, 1)
	assert.ErrorIs(t, fails[0], ErrTooYoung)
}

func TestCheckEligibilityBypassAge(t *testing.T) {
	cat := juniorCategory()
	overMax := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("2009-06-01")}
	assert.Empty(t, CheckEligibility(overMax, cat, 2026, Overrides{BypassAgeVerification: true}))
}

func TestCheckEligibilityUnknownAgeSkipsBounds(t *testing.T) {
	cat := juniorCategory()
	noBirth := &models.Athlete{Gender: models.GenderMen}
	assert.Empty(t, CheckEligibility(noBirth, cat, 2026, Overrides{}))
}

func TestCheckEligibilityGender(t *testing.T) {
	cat := juniorCategory()
	woman := &models.Athlete{Gender: models.GenderWomen, BirthDate: strp("2010-06-01")}
	fails := CheckEligibility(woman, cat, 2026, Overrides{})
	require.Len(t, fails, 1)
	assert.ErrorIs(t, fails[0], ErrGenderMismatch)

	mixed := &models.Category{Title: "Mixed Masters", Abbrev: "MM", Gender: models.GenderMixed}
	assert.Empty(t, CheckEligibility(woman, mixed, 2026, Overrides{}))
}

func TestCheckEligibilitySeniorOverrides(t *testing.T) {
	cat := seniorCategory()
	cat.MaxAge = intp(26)

	// Master by age alone: 27 and over counts without the roster flag.
	master := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("1990-01-01")}
	fails := CheckEligibility(master, cat, 2026, Overrides{})
	require.Len(t, fails, 1)
	assert.ErrorIs(t, fails[0], ErrTooOld)

	assert.Empty(t, CheckEligibility(master, cat, 2026, Overrides{AllowMastersInSenior: true}))

	// The same override does nothing for a non-senior category.
	jcat := juniorCategory()
	tooOld := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("1990-01-01"), IsMaster: true}
	fails = CheckEligibility(tooOld, jcat, 2026, Overrides{AllowMastersInSenior: true})
	require.NotEmpty(t, fails)
	assert.ErrorIs(t, fails[0], ErrTooOld)
}

func TestCheckEligibilityJuniorInSenior(t *testing.T) {
	cat := seniorCategory()
	cat.Gender = models.GenderWomen

	junior := &models.Athlete{Gender: models.GenderMen, BirthDate: strp("2010-06-01"), IsJunior: true}

	fails := CheckEligibility(junior, cat, 2026, Overrides{})
	require.Len(t, fails, 1)
	assert.ErrorIs(t, fails[0], ErrGenderMismatch)

	assert.Empty(t, CheckEligibility(junior, cat, 2026, Overrides{AllowJuniorsInSenior: true}))
}
