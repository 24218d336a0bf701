package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oarstack/regatta/models"
)

type clubNotesJSON struct {
	Code  string `json:"code,omitempty"`
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Clubs searches clubs by name or code pattern.
func (h *Handler) Clubs(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q param not set")
	}

	var clubs []models.Club
	err := h.db.NewSelect().Model(&clubs).
		Where("name ILIKE ? OR code ILIKE ?", fmt.Sprintf("%%%s%%", q), fmt.Sprintf("%%%s%%", q)).
		Order("code").
		Scan(c.Request().Context())

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, clubs)
}

// GetClubNotes returns the organiser notes for a single club.
func (h *Handler) GetClubNotes(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code param not set")
	}

	club := &models.Club{}
	err := h.db.NewSelect().Model(club).
		Where("code = ?", code).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notes := ""
	if club.Notes != nil {
		notes = *club.Notes
	}
	return c.JSON(http.StatusOK, clubNotesJSON{club.Code, club.Name, notes})
}

// SaveClubNotes updates the notes for a club.
func (h *Handler) SaveClubNotes(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code param not set")
	}

	bdy, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer c.Request().Body.Close()

	_, err = h.db.NewUpdate().
		Model((*models.Club)(nil)).
		Set("notes = ?", string(bdy)).
		Where("code = ?", code).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusOK)
}
