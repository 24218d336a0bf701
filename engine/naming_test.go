package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oarstack/regatta/models"
)

func TestEventCode(t *testing.T) {
	senior := seniorCategory()
	seniorWomen := &models.Category{Title: "Senior", Abbrev: "S", Gender: models.GenderWomen}
	juniorB := juniorCategory()
	mixed := &models.Category{Title: "Senior", Abbrev: "S", Gender: models.GenderMixed}

	scull := &models.BoatClass{Code: "1x", CrewSize: 1}
	lightDouble := &models.BoatClass{Code: "2x", CrewSize: 2, Weight: models.WeightLightweight}
	coastalQuad := &models.BoatClass{Code: "CM4x+", CrewSize: 5}

	cases := []struct {
		name string
		cat  *models.Category
		boat *models.BoatClass
		want string
	}{
		{"senior men scull", senior, scull, "M1x"},
		{"senior women lightweight double", seniorWomen, lightDouble, "LW2x"},
		{"junior men lightweight scull", juniorB, &models.BoatClass{Code: "1x", CrewSize: 1, Weight: models.WeightLightweight}, "BLM1x"},
		{"junior men scull", juniorB, scull, "BM1x"},
		{"mixed senior scull", mixed, scull, "Mix1x"},
		{"coastal senior passes through", senior, coastalQuad, "CM4x+"},
		{"coastal junior gains prefix", juniorB, coastalQuad, "BCM4x+"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EventCode(c.cat, c.boat), c.name)
	}
}
