package models

import "github.com/uptrace/bun"

// Club is a rowing club. Notes are free-form text maintained by organisers.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:cl"`

	ClubID int     `bun:"club_id,pk,autoincrement" json:"clubID"`
	Code   string  `bun:"code,notnull,unique" json:"code"`
	Name   string  `bun:"name,notnull" json:"name"`
	Notes  *string `bun:"notes" json:"notes,omitempty"`
}

// Membership kinds, in active-club resolution priority order.
const (
	MembershipCompetitive  = "competitive"
	MembershipSchool       = "school"
	MembershipRecreational = "recreational"
)

// Membership links an athlete to a club.
type Membership struct {
	bun.BaseModel `bun:"table:memberships,alias:m"`

	ID        int    `bun:"id,pk,autoincrement" json:"id"`
	AthleteID int    `bun:"athlete_id,notnull" json:"athleteID"`
	ClubID    int    `bun:"club_id,notnull" json:"clubID"`
	Kind      string `bun:"kind,notnull" json:"kind"`
	Active    bool   `bun:"active,notnull,default:true" json:"active"`

	Club *Club `bun:"rel:belongs-to,join:club_id=club_id" json:"-"`
}
