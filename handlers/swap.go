package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/oarstack/regatta/engine"
	"github.com/oarstack/regatta/models"
)

type swapRequestJSON struct {
	RaceA int `json:"raceA"`
	LaneA int `json:"laneA"`
	RaceB int `json:"raceB"`
	LaneB int `json:"laneB"`
}

type swapResponseJSON struct {
	RaceA *models.Race `json:"raceA"`
	RaceB *models.Race `json:"raceB"`
	// HasResults warns that at least one swapped slot already carried a
	// recorded result, which is now attributed to the other crew.
	HasResults bool `json:"hasResults"`
}

// SwapLanes exchanges the crews of two lane slots, within one race or across
// two, and persists both races in one transaction.
func (h *Handler) SwapLanes(c echo.Context) error {
	var in swapRequestJSON
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	raceA := new(models.Race)
	if err := h.db.NewSelect().Model(raceA).Relation("Lanes").
		Where("rc.race_id = ?", in.RaceA).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, engine.ErrRaceNotFound.Error())
	}
	raceB := raceA
	if in.RaceB != in.RaceA {
		raceB = new(models.Race)
		if err := h.db.NewSelect().Model(raceB).Relation("Lanes").
			Where("rc.race_id = ?", in.RaceB).Scan(ctx); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, engine.ErrRaceNotFound.Error())
		}
	}

	slotA := laneIn(raceA, in.LaneA)
	slotB := laneIn(raceB, in.LaneB)
	hasResults := (slotA != nil && slotA.HasResult()) || (slotB != nil && slotB.HasResult())

	if err := engine.SwapLanes(raceA, in.LaneA, raceB, in.LaneB); err != nil {
		switch {
		case errors.Is(err, engine.ErrLaneOutOfRange):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, engine.ErrRaceNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
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

	for _, l := range []*models.Lane{slotA, slotB} {
		if _, err := tx.NewUpdate().Model(l).
			Column("athlete_id", "crew", "club_id", "club_code", "crew_number", "seed").
			WherePK().
			Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	zap.L().Info("lanes swapped",
		zap.Int("raceA", in.RaceA), zap.Int("laneA", in.LaneA),
		zap.Int("raceB", in.RaceB), zap.Int("laneB", in.LaneB),
		zap.Bool("hasResults", hasResults),
	)

	return c.JSON(http.StatusOK, swapResponseJSON{RaceA: raceA, RaceB: raceB, HasResults: hasResults})
}

func laneIn(r *models.Race, lane int) *models.Lane {
	for _, l := range r.Lanes {
		if l.Lane == lane {
			return l
		}
	}
	return nil
}
