package models

import (
	"strings"

	"github.com/uptrace/bun"
)

// Boat weight classes.
const (
	WeightOpen        = "open"
	WeightLightweight = "lightweight"
)

// BoatClass describes a boat type, e.g. 1x, 2-, 8+ or the coastal C4x+.
type BoatClass struct {
	bun.BaseModel `bun:"table:boat_classes,alias:bc"`

	BoatClassID int    `bun:"boat_class_id,pk,autoincrement" json:"boatClassID"`
	Code        string `bun:"code,notnull,unique" json:"code"`
	CrewSize    int    `bun:"crew_size,notnull" json:"crewSize"`
	Weight      string `bun:"weight,notnull,default:'open'" json:"weight"`
}

// Coastal reports whether the boat code belongs to the coastal/beach family.
// Those codes are prefixed C and already carry the gender letter.
func (b *BoatClass) Coastal() bool {
	return strings.HasPrefix(strings.ToUpper(b.Code), "C")
}

// Lightweight reports whether the boat class is restricted to lightweights.
func (b *BoatClass) Lightweight() bool {
	return b.Weight == WeightLightweight
}
