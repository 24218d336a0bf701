package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Entry statuses. Withdrawal is terminal and non-destructive: withdrawn rows
// stay in place and are skipped by the draw and by crew-number scans.
const (
	EntryDraft     = "draft"
	EntryPending   = "pending"
	EntryApproved  = "approved"
	EntryWithdrawn = "withdrawn"
	EntryRejected  = "rejected"
)

// Entry is a participation record for an athlete or crew in a
// category/boat-class. Unsaved drafts carry EntryID == 0 and a DraftID so
// they can be told apart from persisted rows without id sniffing.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	EntryID     int       `bun:"entry_id,pk,autoincrement" json:"entryID"`
	DraftID     uuid.UUID `bun:"-" json:"draftID,omitempty"`
	CategoryID  int       `bun:"category_id,notnull" json:"categoryID"`
	BoatClassID int       `bun:"boat_class_id,notnull" json:"boatClassID"`
	AthleteID   *int      `bun:"athlete_id" json:"athleteID,omitempty"`
	Crew        []int     `bun:"crew,type:jsonb" json:"crew,omitempty"`
	ClubID      *int      `bun:"club_id" json:"clubID,omitempty"`
	ClubCode    string    `bun:"club_code,notnull,default:''" json:"clubCode,omitempty"`
	CrewNumber  *int      `bun:"crew_number" json:"crewNumber,omitempty"`
	Seed        *int      `bun:"seed" json:"seed,omitempty"`
	Notes       string    `bun:"notes,notnull,default:''" json:"notes,omitempty"`
	Status      string    `bun:"status,notnull,default:'pending'" json:"status"`
}

// Persisted reports whether the entry has been saved to the registration
// store. Drafts are freely discardable.
func (e *Entry) Persisted() bool { return e.EntryID != 0 }

// NewDraft returns an unsaved entry tagged with a fresh draft id.
func NewDraft(categoryID, boatClassID int) *Entry {
	return &Entry{
		DraftID:     uuid.New(),
		CategoryID:  categoryID,
		BoatClassID: boatClassID,
		Status:      EntryDraft,
	}
}
