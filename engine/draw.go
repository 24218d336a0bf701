package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oarstack/regatta/models"
)

// Disciplines and their lane capacity.
const (
	DisciplineClassic = "classic"
	DisciplineCoastal = "coastal"
	DisciplineBeach   = "beach"
	DisciplineIndoor  = "indoor"
)

// MaxLanes returns the lane capacity of a discipline, 0 for an unknown one.
func MaxLanes(discipline string) int {
	switch discipline {
	case DisciplineClassic:
		return 8
	case DisciplineCoastal:
		return 20
	case DisciplineBeach, DisciplineIndoor:
		return 100
	default:
		return 0
	}
}

// Draw strategies.
const (
	StrategySeeded = "seeded"
	StrategyRandom = "random"
)

const startTimeLayout = "15:04"

// DrawParams configures one partitioning run.
type DrawParams struct {
	Category        *models.Category
	Boat            *models.BoatClass // acts as a filter; nil requires a uniform entry list
	Discipline      string
	LanesPerRace    int
	Strategy        string
	Journey         int
	StartRaceNumber *int
	StartTime       *time.Time
	IntervalMinutes int
	Session         string
	Prefix          string // race name prefix; defaults to the event code
	Rand            *rand.Rand
}

// Partition chunks an ordered, eligibility-checked entry list into races of
// at most LanesPerRace lanes. Seeded draws keep the given order, so seeds
// 1..N fill race 1 before race 2; random draws permute lane positions inside
// each chunk but never move an entry between chunks. Scheduling metadata is
// only stamped when both a start number and a start time are supplied.
func Partition(entries []*models.Entry, p DrawParams) ([]*models.Race, error) {
	capacity := MaxLanes(p.Discipline)
	if capacity == 0 || p.LanesPerRace < 1 || p.LanesPerRace > capacity {
		return nil, fmt.Errorf("%w: %d lanes for %s", ErrInvalidLaneCount, p.LanesPerRace, p.Discipline)
	}

	pool := make([]*models.Entry, 0, len(entries))
	boatClassID := 0
	for _, e := range entries {
		if p.Boat != nil {
			if e.BoatClassID != p.Boat.BoatClassID {
				continue
			}
		} else {
			if boatClassID == 0 {
				boatClassID = e.BoatClassID
			} else if e.BoatClassID != boatClassID {
				return nil, ErrAmbiguousBoatClass
			}
		}
		if p.Boat != nil && len(e.Crew) > 0 && len(e.Crew) != p.Boat.CrewSize {
			return nil, fmt.Errorf("%w: entry %d has %d rowers, boat %s takes %d",
				ErrCrewSizeMismatch, e.EntryID, len(e.Crew), p.Boat.Code, p.Boat.CrewSize)
		}
		pool = append(pool, e)
	}
	if len(pool) == 0 {
		return nil, ErrNoEntries
	}

	rng := p.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	journey := p.Journey
	if journey < 1 {
		journey = 1
	}

	base := p.Prefix
	if base == "" && p.Category != nil && p.Boat != nil {
		base = EventCode(p.Category, p.Boat)
	}

	var races []*models.Race
	for start := 0; start < len(pool); start += p.LanesPerRace {
		chunk := pool[start:min(start+p.LanesPerRace, len(pool))]
		k := len(races)

		race := &models.Race{
			Journey:   journey,
			RaceOrder: k + 1,
			Session:   p.Session,
			Status:    models.RaceScheduled,
			Name:      fmt.Sprintf("%s %d", base, k+1),
		}
		if p.Category != nil {
			race.CategoryID = p.Category.CategoryID
		}
		if p.Boat != nil {
			race.BoatClassID = p.Boat.BoatClassID
		} else {
			race.BoatClassID = boatClassID
		}
		if p.StartRaceNumber != nil && p.StartTime != nil {
			race.RaceOrder = *p.StartRaceNumber + k
			at := p.StartTime.Add(time.Duration(k*p.IntervalMinutes) * time.Minute).Format(startTimeLayout)
			race.StartTime = &at
		}

		laneOf := func(i int) int { return i + 1 }
		if p.Strategy == StrategyRandom {
			perm := rng.Perm(len(chunk))
			laneOf = func(i int) int { return perm[i] + 1 }
		}

		for i, e := range chunk {
			race.Lanes = append(race.Lanes, &models.Lane{
				Lane:       laneOf(i),
				AthleteID:  e.AthleteID,
				Crew:       e.Crew,
				ClubID:     e.ClubID,
				ClubCode:   e.ClubCode,
				CrewNumber: e.CrewNumber,
				Seed:       e.Seed,
			})
		}
		races = append(races, race)
	}

	return races, nil
}
