package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/oarstack/regatta/engine"
	"github.com/oarstack/regatta/models"
)

type drawRequestJSON struct {
	CategoryID      int    `json:"categoryID"`
	BoatClassID     int    `json:"boatClassID"`
	Discipline      string `json:"discipline"`
	LanesPerRace    int    `json:"lanesPerRace"`
	Strategy        string `json:"strategy"`
	Journey         int    `json:"journey"`
	StartRaceNumber *int   `json:"startRaceNumber,omitempty"`
	StartTime       string `json:"startTime,omitempty"` // "15:04"
	IntervalMinutes int    `json:"intervalMinutes,omitempty"`
	Session         string `json:"session,omitempty"`
	Prefix          string `json:"prefix,omitempty"`
	// Overwrite replaces prior races for the category/journey (and boat
	// class when given). Recorded results in those races are discarded; the
	// response reports how many so the UI can have warned beforehand.
	Overwrite bool `json:"overwrite,omitempty"`
}

type drawResponseJSON struct {
	Races            []*models.Race `json:"races"`
	ReplacedRaces    int            `json:"replacedRaces"`
	ResultsDiscarded int            `json:"resultsDiscarded"`
}

// Draw partitions the approved entries of a category/boat-class into races
// and persists them in one transaction.
func (h *Handler) Draw(c echo.Context) error {
	var in drawRequestJSON
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.CategoryID == 0 || in.BoatClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "categoryID and boatClassID are required")
	}

	ctx := c.Request().Context()

	category := new(models.Category)
	if err := h.db.NewSelect().Model(category).Where("category_id = ?", in.CategoryID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	}
	boat := new(models.BoatClass)
	if err := h.db.NewSelect().Model(boat).Where("boat_class_id = ?", in.BoatClassID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "boat class not found")
	}

	var entries []*models.Entry
	if err := h.db.NewSelect().Model(&entries).
		Where("category_id = ?", in.CategoryID).
		Where("boat_class_id = ?", in.BoatClassID).
		Where("status = ?", models.EntryApproved).
		OrderExpr("seed ASC NULLS LAST, entry_id ASC").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	params := engine.DrawParams{
		Category:        category,
		Boat:            boat,
		Discipline:      in.Discipline,
		LanesPerRace:    in.LanesPerRace,
		Strategy:        in.Strategy,
		Journey:         in.Journey,
		StartRaceNumber: in.StartRaceNumber,
		IntervalMinutes: in.IntervalMinutes,
		Session:         in.Session,
		Prefix:          in.Prefix,
	}
	if in.StartTime != "" {
		at, err := time.Parse("15:04", in.StartTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad startTime, want HH:MM")
		}
		params.StartTime = &at
	}

	races, err := engine.Partition(entries, params)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidLaneCount),
			errors.Is(err, engine.ErrAmbiguousBoatClass),
			errors.Is(err, engine.ErrCrewSizeMismatch):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, engine.ErrNoEntries):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	journey := in.Journey
	if journey < 1 {
		journey = 1
	}

	var existing []*models.Race
	if err := h.db.NewSelect().Model(&existing).
		Relation("Lanes").
		Where("category_id = ?", in.CategoryID).
		Where("journey = ?", journey).
		Where("boat_class_id = ?", in.BoatClassID).
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(existing) > 0 && !in.Overwrite {
		return echo.NewHTTPError(http.StatusConflict, "draw already exists for this category/journey; set overwrite to replace it")
	}

	discarded := 0
	for _, r := range existing {
		for _, l := range r.Lanes {
			if l.HasResult() {
				discarded++
			}
		}
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if len(existing) > 0 {
		ids := make([]int, len(existing))
		for i, r := range existing {
			ids[i] = r.RaceID
		}
		if _, err := tx.NewDelete().Model((*models.Lane)(nil)).Where("race_id IN (?)", bun.In(ids)).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if _, err := tx.NewDelete().Model((*models.Race)(nil)).Where("race_id IN (?)", bun.In(ids)).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	for _, r := range races {
		if _, err := tx.NewInsert().Model(r).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		for _, l := range r.Lanes {
			l.RaceID = r.RaceID
		}
		if _, err := tx.NewInsert().Model(&r.Lanes).Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	zap.L().Info("draw generated",
		zap.Int("categoryID", in.CategoryID),
		zap.Int("boatClassID", in.BoatClassID),
		zap.Int("journey", journey),
		zap.Int("races", len(races)),
		zap.Int("replaced", len(existing)),
		zap.Int("resultsDiscarded", discarded),
	)

	return c.JSON(http.StatusCreated, drawResponseJSON{
		Races:            races,
		ReplacedRaces:    len(existing),
		ResultsDiscarded: discarded,
	})
}

// Races lists races with their lanes for a category, optionally narrowed to
// one journey.
func (h *Handler) Races(c echo.Context) error {
	categoryID := c.QueryParam("categoryID")
	if categoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing categoryID param")
	}

	var races []*models.Race
	q := h.db.NewSelect().Model(&races).
		Relation("Lanes").
		Where("category_id = ?", categoryID).
		Order("journey", "race_order")
	if j := c.QueryParam("journey"); j != "" {
		q = q.Where("journey = ?", j)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, races)
}
