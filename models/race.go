package models

import "github.com/uptrace/bun"

// Race statuses, monotonic: scheduled -> in_progress -> completed.
const (
	RaceScheduled  = "scheduled"
	RaceInProgress = "in_progress"
	RaceCompleted  = "completed"
)

// Per-lane result statuses. Only ok lanes take part in time-based ranking.
const (
	ResultOK  = "ok"
	ResultDNS = "dns"
	ResultDNF = "dnf"
	ResultDSQ = "dsq"
	ResultABS = "abs"
)

// Race is one scheduled heat/final with its lane assignments.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	RaceID      int     `bun:"race_id,pk,autoincrement" json:"raceID"`
	CategoryID  int     `bun:"category_id,notnull" json:"categoryID"`
	BoatClassID int     `bun:"boat_class_id,notnull" json:"boatClassID"`
	Journey     int     `bun:"journey,notnull,default:1" json:"journey"`
	RaceOrder   int     `bun:"race_order,notnull" json:"raceOrder"`
	Name        string  `bun:"name,notnull" json:"name"`
	Session     string  `bun:"session,notnull,default:''" json:"session,omitempty"`
	StartTime   *string `bun:"start_time" json:"startTime,omitempty"`
	Distance    *int    `bun:"distance" json:"distance,omitempty"`
	Status      string  `bun:"status,notnull,default:'scheduled'" json:"status"`

	Lanes []*Lane `bun:"rel:has-many,join:race_id=race_id" json:"lanes"`
}

// Lane is one slot in a race. The result columns stay NULL until times are
// recorded; lane numbers are unique within a race.
type Lane struct {
	bun.BaseModel `bun:"table:lanes,alias:l"`

	LaneID     int    `bun:"lane_id,pk,autoincrement" json:"laneID"`
	RaceID     int    `bun:"race_id,notnull" json:"raceID"`
	Lane       int    `bun:"lane,notnull" json:"lane"`
	AthleteID  *int   `bun:"athlete_id" json:"athleteID,omitempty"`
	Crew       []int  `bun:"crew,type:jsonb" json:"crew,omitempty"`
	ClubID     *int   `bun:"club_id" json:"clubID,omitempty"`
	ClubCode   string `bun:"club_code,notnull,default:''" json:"clubCode,omitempty"`
	CrewNumber *int   `bun:"crew_number" json:"crewNumber,omitempty"`
	Seed       *int   `bun:"seed" json:"seed,omitempty"`

	FinishPosition *int    `bun:"finish_position" json:"finishPosition,omitempty"`
	ElapsedMs      *int64  `bun:"elapsed_ms" json:"elapsedMs,omitempty"`
	ResultStatus   *string `bun:"result_status" json:"resultStatus,omitempty"`
	ResultNotes    *string `bun:"result_notes" json:"resultNotes,omitempty"`
}

// HasResult reports whether any result data has been recorded for the lane.
func (l *Lane) HasResult() bool {
	return l.ResultStatus != nil || l.ElapsedMs != nil || l.FinishPosition != nil
}
