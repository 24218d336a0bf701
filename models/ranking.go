package models

import "github.com/uptrace/bun"

// RankingSystem supplies a custom finish-position -> points table for a
// competition. Selection is always explicit by id; when no system is named
// the engine falls back to its built-in default table.
type RankingSystem struct {
	bun.BaseModel `bun:"table:ranking_systems,alias:rs"`

	RankingSystemID int         `bun:"ranking_system_id,pk,autoincrement" json:"rankingSystemID"`
	Name            string      `bun:"name,notnull,unique" json:"name"`
	Active          bool        `bun:"active,notnull,default:true" json:"active"`
	Points          map[int]int `bun:"points,notnull,type:jsonb" json:"points"`
}
