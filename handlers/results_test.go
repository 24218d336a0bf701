package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarstack/regatta/engine"
)

func intp(n int) *int       { return &n }
func int64p(n int64) *int64 { return &n }

func TestGroupResultsByRace(t *testing.T) {
	ok := "ok"
	dns := "dns"
	rows := []resultRow{
		{RaceID: 1, Name: "M1x 1", Journey: 1, RaceOrder: 1,
			Lane: 2, ClubCode: "SLB", FinishPosition: intp(1), ElapsedMs: int64p(74000), ResultStatus: &ok},
		{RaceID: 1, Name: "M1x 1", Journey: 1, RaceOrder: 1,
			Lane: 1, ClubCode: "CNL", FinishPosition: intp(2), ElapsedMs: int64p(75000), ResultStatus: &ok},
		{RaceID: 1, Name: "M1x 1", Journey: 1, RaceOrder: 1,
			Lane: 3, ClubCode: "FCP", ResultStatus: &dns},
		{RaceID: 2, Name: "M1x 2", Journey: 1, RaceOrder: 2,
			Lane: 1, ClubCode: "CNL", FinishPosition: intp(1), ElapsedMs: int64p(80000), ResultStatus: &ok},
	}

	out := groupResultsByRace(rows, nil)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].RaceID)
	assert.Equal(t, 2, out[1].RaceID)
	require.Len(t, out[0].Lanes, 3)

	winner := out[0].Lanes[0]
	assert.Equal(t, 2, winner.Lane)
	assert.Equal(t, "1:14.00", winner.Elapsed)
	assert.Empty(t, winner.Delta)
	assert.Equal(t, 20, winner.Points)

	second := out[0].Lanes[1]
	assert.Equal(t, "1:15.00", second.Elapsed)
	assert.Equal(t, "1.00", second.Delta)
	assert.Equal(t, 12, second.Points)

	noShow := out[0].Lanes[2]
	assert.Equal(t, "dns", noShow.Status)
	assert.Nil(t, noShow.Position)
	assert.Equal(t, 0, noShow.Points)

	assert.Equal(t, 20, out[1].Lanes[0].Points)
	assert.Empty(t, out[1].Lanes[0].Delta)
}

func TestGroupResultsByRaceCustomTable(t *testing.T) {
	ok := "ok"
	rows := []resultRow{
		{RaceID: 1, Lane: 1, ClubCode: "CNL", FinishPosition: intp(1), ElapsedMs: int64p(70000), ResultStatus: &ok},
		{RaceID: 1, Lane: 2, ClubCode: "SLB", FinishPosition: intp(2), ElapsedMs: int64p(71000), ResultStatus: &ok},
	}

	out := groupResultsByRace(rows, engine.PointTable{1: 100})
	require.Len(t, out, 1)
	assert.Equal(t, 100, out[0].Lanes[0].Points)
	assert.Equal(t, 12, out[0].Lanes[1].Points, "positions absent from a custom table fall back to the default")
}
