package models

import "github.com/uptrace/bun"

// Athlete genders. Categories additionally allow GenderMixed.
const (
	GenderMen   = "men"
	GenderWomen = "women"
	GenderMixed = "mixed"
)

// Athlete is a registered rower. Reference data owned by the roster import;
// the engine never mutates athletes.
type Athlete struct {
	bun.BaseModel `bun:"table:athletes,alias:a"`

	AthleteID int     `bun:"athlete_id,pk,autoincrement" json:"athleteID"`
	FirstName string  `bun:"first_name,notnull" json:"firstName"`
	LastName  string  `bun:"last_name,notnull" json:"lastName"`
	BirthDate *string `bun:"birth_date,type:date" json:"birthDate,omitempty"`
	Gender    string  `bun:"gender,notnull" json:"gender"`
	IsJunior  bool    `bun:"is_junior,notnull,default:false" json:"isJunior"`
	IsMaster  bool    `bun:"is_master,notnull,default:false" json:"isMaster"`
}
