package models

import (
	"strings"

	"github.com/uptrace/bun"
)

// Category is a competition category (age band + gender). MinAge/MaxAge are
// inclusive; nil means unbounded on that side.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:ct"`

	CategoryID int    `bun:"category_id,pk,autoincrement" json:"categoryID"`
	Title      string `bun:"title,notnull" json:"title"`
	Abbrev     string `bun:"abbrev,notnull,default:''" json:"abbrev"`
	Gender     string `bun:"gender,notnull" json:"gender"`
	MinAge     *int   `bun:"min_age" json:"minAge,omitempty"`
	MaxAge     *int   `bun:"max_age" json:"maxAge,omitempty"`
}

// SeniorLike reports whether the category counts as an open/senior class.
// Senior categories carry no abbreviation prefix in event codes and admit
// juniors/masters under the organiser overrides.
func (c *Category) SeniorLike() bool {
	if strings.Contains(strings.ToLower(c.Title), "senior") {
		return true
	}
	ab := strings.ToUpper(strings.TrimSpace(c.Abbrev))
	return ab == "" || ab == "S" || ab == "SEN"
}
