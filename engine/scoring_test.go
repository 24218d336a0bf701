package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarstack/regatta/models"
)

func TestScoreRanksAndAwardsPoints(t *testing.T) {
	scored := Score([]LaneTime{
		{Lane: 1, Status: models.ResultOK, Time: "1:15.00"},
		{Lane: 2, Status: models.ResultOK, Time: "1:14.00"},
		{Lane: 3, Status: models.ResultDNS},
	}, nil)
	require.Len(t, scored, 3)

	first := scored[1]
	require.NotNil(t, first.Position)
	assert.Equal(t, 1, *first.Position)
	assert.Equal(t, 20, first.Points)
	assert.Empty(t, first.Delta)

	second := scored[0]
	require.NotNil(t, second.Position)
	assert.Equal(t, 2, *second.Position)
	assert.Equal(t, 12, second.Points)
	assert.Equal(t, "1.00", second.Delta)

	dns := scored[2]
	assert.Nil(t, dns.Position)
	assert.Nil(t, dns.ElapsedMs)
	assert.Equal(t, 0, dns.Points)
	assert.Equal(t, models.ResultDNS, dns.Status)
}

func TestScoreTiesBreakOnLaneNumber(t *testing.T) {
	scored := Score([]LaneTime{
		{Lane: 4, Status: models.ResultOK, Time: "1:14.00"},
		{Lane: 2, Status: models.ResultOK, Time: "1:14.00"},
	}, nil)

	require.NotNil(t, scored[0].Position)
	require.NotNil(t, scored[1].Position)
	assert.Equal(t, 2, *scored[0].Position, "lane 4 sorts after lane 2 on equal time")
	assert.Equal(t, 1, *scored[1].Position)
}

func TestScoreFlagsUnparseableLane(t *testing.T) {
	scored := Score([]LaneTime{
		{Lane: 1, Status: models.ResultOK, Time: "garbage"},
		{Lane: 2, Status: models.ResultOK, Time: "1:14.00"},
	}, nil)

	bad := scored[0]
	require.Error(t, bad.Err)
	assert.ErrorIs(t, bad.Err, ErrInvalidFormat)
	assert.Nil(t, bad.Position)
	assert.Equal(t, 0, bad.Points)

	require.NotNil(t, scored[1].Position)
	assert.Equal(t, 1, *scored[1].Position, "the parseable lane still wins")
}

func TestScoreCustomTableFallsBack(t *testing.T) {
	table := PointTable{1: 100}
	scored := Score([]LaneTime{
		{Lane: 1, Status: models.ResultOK, Time: "1:14.00"},
		{Lane: 2, Status: models.ResultOK, Time: "1:15.00"},
	}, table)

	assert.Equal(t, 100, scored[0].Points)
	assert.Equal(t, 12, scored[1].Points, "positions absent from a custom table fall back to the default")
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 20, Points(nil, 1))
	assert.Equal(t, 1, Points(nil, 8))
	assert.Equal(t, 0, Points(nil, 9))
	assert.Equal(t, 7, Points(PointTable{3: 7}, 3))
	assert.Equal(t, 20, Points(PointTable{3: 7}, 1))
	assert.Equal(t, 12, Points(PointTable{1: 100}, 2))
	assert.Equal(t, 0, Points(PointTable{1: 100}, 9))
}

func TestCanComplete(t *testing.T) {
	assert.False(t, CanComplete(nil))
	assert.False(t, CanComplete([]LaneTime{{Lane: 1, Status: models.ResultDNS}}))
	assert.False(t, CanComplete([]LaneTime{{Lane: 1, Status: models.ResultOK, Time: "bad"}}))
	assert.True(t, CanComplete([]LaneTime{
		{Lane: 1, Status: models.ResultDNF},
		{Lane: 2, Status: models.ResultOK, Time: "1:14.00"},
	}))
}

func TestTransitionStatus(t *testing.T) {
	assert.NoError(t, TransitionStatus(models.RaceScheduled, models.RaceInProgress))
	assert.NoError(t, TransitionStatus(models.RaceInProgress, models.RaceCompleted))
	assert.NoError(t, TransitionStatus(models.RaceScheduled, models.RaceCompleted))
	assert.NoError(t, TransitionStatus(models.RaceCompleted, models.RaceCompleted))

	assert.Error(t, TransitionStatus(models.RaceCompleted, models.RaceScheduled))
	assert.Error(t, TransitionStatus(models.RaceInProgress, models.RaceScheduled))
	assert.Error(t, TransitionStatus("bogus", models.RaceCompleted))
	assert.Error(t, TransitionStatus(models.RaceScheduled, "bogus"))
}
