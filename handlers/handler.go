package handlers

import "github.com/uptrace/bun"

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db         *bun.DB
	JWTKey     []byte
	SeasonYear int
}

// New creates a Handler with the given database connection, JWT signing key
// and the season year eligibility is computed against.
func New(db *bun.DB, jwtKey []byte, seasonYear int) *Handler {
	return &Handler{db: db, JWTKey: jwtKey, SeasonYear: seasonYear}
}
