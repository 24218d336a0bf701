package engine

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarstack/regatta/models"
)

func seededEntries(n, boatClassID int) []*models.Entry {
	entries := make([]*models.Entry, 0, n)
	for k := 1; k <= n; k++ {
		entries = append(entries, &models.Entry{
			EntryID:     k,
			BoatClassID: boatClassID,
			Seed:        intp(k),
			Status:      models.EntryApproved,
		})
	}
	return entries
}

func singleScull() *models.BoatClass {
	return &models.BoatClass{BoatClassID: 1, Code: "1x", CrewSize: 1}
}

func TestPartitionRejectsBadLaneCounts(t *testing.T) {
	entries := seededEntries(4, 1)
	cases := []struct {
		discipline string
		lanes      int
	}{
		{DisciplineClassic, 0},
		{DisciplineClassic, 9},
		{DisciplineCoastal, 21},
		{"unknown", 6},
	}
	for _, c := range cases {
		_, err := Partition(entries, DrawParams{Discipline: c.discipline, LanesPerRace: c.lanes})
		assert.ErrorIs(t, err, ErrInvalidLaneCount, fmt.Sprintf("%s/%d", c.discipline, c.lanes))
	}
}

func TestPartitionRejectsEmptyPool(t *testing.T) {
	_, err := Partition(nil, DrawParams{Discipline: DisciplineClassic, LanesPerRace: 6})
	assert.ErrorIs(t, err, ErrNoEntries)

	// Boat filter leaves nothing behind.
	boat := &models.BoatClass{BoatClassID: 2, Code: "2x", CrewSize: 2}
	_, err = Partition(seededEntries(3, 1), DrawParams{
		Boat: boat, Discipline: DisciplineClassic, LanesPerRace: 6,
	})
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestPartitionRejectsMixedBoatClassesWithoutFilter(t *testing.T) {
	entries := append(seededEntries(2, 1), seededEntries(2, 2)...)
	_, err := Partition(entries, DrawParams{Discipline: DisciplineClassic, LanesPerRace: 6})
	assert.ErrorIs(t, err, ErrAmbiguousBoatClass)
}

func TestPartitionRejectsWrongCrewSize(t *testing.T) {
	boat := &models.BoatClass{BoatClassID: 1, Code: "2x", CrewSize: 2}
	entries := []*models.Entry{{EntryID: 1, BoatClassID: 1, Crew: []int{10, 11, 12}}}
	_, err := Partition(entries, DrawParams{Boat: boat, Discipline: DisciplineClassic, LanesPerRace: 6})
	assert.ErrorIs(t, err, ErrCrewSizeMismatch)
}

func TestPartitionSeededPlacement(t *testing.T) {
	const total, perRace = 19, 6
	entries := seededEntries(total, 1)

	races, err := Partition(entries, DrawParams{
		Category:     seniorCategory(),
		Boat:         singleScull(),
		Discipline:   DisciplineClassic,
		LanesPerRace: perRace,
		Strategy:     StrategySeeded,
	})
	require.NoError(t, err)
	require.Len(t, races, 4)

	for _, r := range races {
		for _, l := range r.Lanes {
			require.NotNil(t, l.Seed)
			k := *l.Seed
			wantRace := (k + perRace - 1) / perRace
			wantLane := (k-1)%perRace + 1
			assert.Equal(t, wantRace, r.RaceOrder, "seed %d race", k)
			assert.Equal(t, wantLane, l.Lane, "seed %d lane", k)
		}
	}
	assert.Len(t, races[3].Lanes, 1, "last race holds the remainder")
}

func TestPartitionRandomKeepsChunksAndUniqueLanes(t *testing.T) {
	entries := seededEntries(13, 1)

	races, err := Partition(entries, DrawParams{
		Boat:         singleScull(),
		Discipline:   DisciplineClassic,
		LanesPerRace: 8,
		Strategy:     StrategyRandom,
		Rand:         rand.New(rand.NewSource(42)),
	})
	require.NoError(t, err)
	require.Len(t, races, 2)

	for _, r := range races {
		lanes := make(map[int]bool)
		for _, l := range r.Lanes {
			assert.False(t, lanes[l.Lane], "duplicate lane %d", l.Lane)
			assert.GreaterOrEqual(t, l.Lane, 1)
			assert.LessOrEqual(t, l.Lane, len(r.Lanes))
			lanes[l.Lane] = true
		}
	}

	// Shuffling stays inside the chunk: the first eight seeds never spill
	// into the second race.
	for _, l := range races[1].Lanes {
		assert.Greater(t, *l.Seed, 8)
	}
}

func TestPartitionSchedulingAndNames(t *testing.T) {
	entries := seededEntries(10, 1)
	at := time.Date(2026, 6, 14, 9, 30, 0, 0, time.UTC)

	races, err := Partition(entries, DrawParams{
		Category:        seniorCategory(),
		Boat:            singleScull(),
		Discipline:      DisciplineClassic,
		LanesPerRace:    6,
		Strategy:        StrategySeeded,
		Journey:         2,
		StartRaceNumber: intp(14),
		StartTime:       &at,
		IntervalMinutes: 10,
		Session:         "morning",
	})
	require.NoError(t, err)
	require.Len(t, races, 2)

	assert.Equal(t, 14, races[0].RaceOrder)
	assert.Equal(t, 15, races[1].RaceOrder)
	require.NotNil(t, races[0].StartTime)
	require.NotNil(t, races[1].StartTime)
	assert.Equal(t, "09:30", *races[0].StartTime)
	assert.Equal(t, "09:40", *races[1].StartTime)
	assert.Equal(t, 2, races[0].Journey)
	assert.Equal(t, "morning", races[0].Session)
	assert.Equal(t, models.RaceScheduled, races[0].Status)
	assert.Equal(t, "M1x 1", races[0].Name)
	assert.Equal(t, "M1x 2", races[1].Name)
}

func TestPartitionSkipsSchedulingWithoutStartTime(t *testing.T) {
	races, err := Partition(seededEntries(10, 1), DrawParams{
		Boat:            singleScull(),
		Discipline:      DisciplineClassic,
		LanesPerRace:    6,
		StartRaceNumber: intp(14),
	})
	require.NoError(t, err)
	require.Len(t, races, 2)

	// A start number alone stamps nothing: ordering stays sequential.
	assert.Equal(t, 1, races[0].RaceOrder)
	assert.Equal(t, 2, races[1].RaceOrder)
	assert.Nil(t, races[0].StartTime)
	assert.Nil(t, races[1].StartTime)
}

func TestPartitionPrefixOverridesEventCode(t *testing.T) {
	races, err := Partition(seededEntries(3, 1), DrawParams{
		Category:     seniorCategory(),
		Boat:         singleScull(),
		Discipline:   DisciplineCoastal,
		LanesPerRace: 20,
		Prefix:       "Final",
	})
	require.NoError(t, err)
	require.Len(t, races, 1)
	assert.Equal(t, "Final 1", races[0].Name)
}
