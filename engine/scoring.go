package engine

import (
	"fmt"
	"sort"

	"github.com/oarstack/regatta/models"
)

// LaneTime is the recorded outcome for one lane as entered by the timing
// crew: the raw elapsed-time text and the lane status.
type LaneTime struct {
	Lane   int
	Time   string
	Status string
	Notes  string
}

// ScoredLane is the scored outcome for one lane. Position and ElapsedMs are
// nil for lanes excluded from ranking (non-ok status or unparseable time);
// such lanes always score zero points. Err carries the parse failure for a
// lane whose time could not be read, without failing the whole call.
type ScoredLane struct {
	Lane      int
	Status    string
	ElapsedMs *int64
	Position  *int
	Delta     string
	Points    int
	Notes     string
	Err       error
}

// Score derives finish positions, winner deltas and points for a race.
// Only ok-status lanes with a parseable time are ranked, ascending by
// elapsed time with ties broken by lane number. Points come from the custom
// table when given, falling back to the default table.
func Score(lanes []LaneTime, table PointTable) []ScoredLane {
	scored := make([]ScoredLane, len(lanes))
	ranked := make([]*ScoredLane, 0, len(lanes))

	for i, lt := range lanes {
		scored[i] = ScoredLane{Lane: lt.Lane, Status: lt.Status, Notes: lt.Notes}
		if lt.Status != models.ResultOK {
			continue
		}
		ms, err := ParseElapsed(lt.Time)
		if err != nil {
			scored[i].Err = fmt.Errorf("lane %d: %w", lt.Lane, err)
			continue
		}
		scored[i].ElapsedMs = &ms
		ranked = append(ranked, &scored[i])
	}

	// Tie-break on lane number: order candidates by lane first, then a
	// stable sort on time keeps equal times in lane order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Lane < ranked[j].Lane })
	sort.SliceStable(ranked, func(i, j int) bool { return *ranked[i].ElapsedMs < *ranked[j].ElapsedMs })

	for i, s := range ranked {
		pos := i + 1
		s.Position = &pos
		s.Points = Points(table, pos)
		if i > 0 {
			s.Delta = FormatDelta(*s.ElapsedMs - *ranked[0].ElapsedMs)
		}
	}

	return scored
}

// CanComplete reports whether a race may transition to completed: at least
// one lane must hold a valid ok time. Enforced as a precondition, never
// auto-corrected.
func CanComplete(lanes []LaneTime) bool {
	for _, lt := range lanes {
		if lt.Status != models.ResultOK {
			continue
		}
		if _, err := ParseElapsed(lt.Time); err == nil {
			return true
		}
	}
	return false
}

var statusRank = map[string]int{
	models.RaceScheduled:  0,
	models.RaceInProgress: 1,
	models.RaceCompleted:  2,
}

// TransitionStatus validates a race status change. Statuses only move
// forward: scheduled, in_progress, completed.
func TransitionStatus(from, to string) error {
	fr, ok := statusRank[from]
	if !ok {
		return fmt.Errorf("unknown race status %q", from)
	}
	tr, ok := statusRank[to]
	if !ok {
		return fmt.Errorf("unknown race status %q", to)
	}
	if tr < fr {
		return fmt.Errorf("race status cannot move back from %s to %s", from, to)
	}
	return nil
}
