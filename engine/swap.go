package engine

import (
	"fmt"

	"github.com/oarstack/regatta/models"
)

// swapLaneBound is the classic-discipline cap the swap operation enforces.
const swapLaneBound = 8

// SwapLanes exchanges the crew payload (athlete, crew, club, crew number,
// seed) between two lane slots, in place. Lane numbers and any recorded
// result columns stay with their slot, so swapping after results are entered
// misattributes them; callers own that warning. raceA and raceB may be the
// same race.
func SwapLanes(raceA *models.Race, laneA int, raceB *models.Race, laneB int) error {
	if raceA == nil || raceB == nil {
		return ErrRaceNotFound
	}
	if laneA < 1 || laneA > swapLaneBound || laneB < 1 || laneB > swapLaneBound {
		return fmt.Errorf("%w: %d/%d", ErrLaneOutOfRange, laneA, laneB)
	}

	slotA := findLane(raceA, laneA)
	slotB := findLane(raceB, laneB)
	if slotA == nil || slotB == nil {
		return fmt.Errorf("%w: no such lane slot", ErrLaneOutOfRange)
	}

	slotA.AthleteID, slotB.AthleteID = slotB.AthleteID, slotA.AthleteID
	slotA.Crew, slotB.Crew = slotB.Crew, slotA.Crew
	slotA.ClubID, slotB.ClubID = slotB.ClubID, slotA.ClubID
	slotA.ClubCode, slotB.ClubCode = slotB.ClubCode, slotA.ClubCode
	slotA.CrewNumber, slotB.CrewNumber = slotB.CrewNumber, slotA.CrewNumber
	slotA.Seed, slotB.Seed = slotB.Seed, slotA.Seed

	return nil
}

func findLane(r *models.Race, lane int) *models.Lane {
	for _, l := range r.Lanes {
		if l.Lane == lane {
			return l
		}
	}
	return nil
}
