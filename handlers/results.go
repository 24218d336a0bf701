package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/oarstack/regatta/engine"
	"github.com/oarstack/regatta/models"
)

type laneResultJSON struct {
	Lane   int    `json:"lane"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

type recordResultsJSON struct {
	RaceID          int              `json:"raceID"`
	RankingSystemID *int             `json:"rankingSystemID,omitempty"`
	Lanes           []laneResultJSON `json:"lanes"`
}

type scoredLaneJSON struct {
	Lane     int    `json:"lane"`
	Status   string `json:"status"`
	Position *int   `json:"position,omitempty"`
	Elapsed  string `json:"elapsed,omitempty"`
	Delta    string `json:"delta,omitempty"`
	Points   int    `json:"points"`
	Error    string `json:"error,omitempty"`
}

// RecordResults scores recorded lane times for a race and marks it
// completed. A lane whose time cannot be parsed is excluded from ranking and
// flagged in the response; the rest of the race still scores.
func (h *Handler) RecordResults(c echo.Context) error {
	var in recordResultsJSON
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.RaceID == 0 || len(in.Lanes) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "raceID and lanes are required")
	}

	ctx := c.Request().Context()

	race := new(models.Race)
	if err := h.db.NewSelect().Model(race).Relation("Lanes").
		Where("rc.race_id = ?", in.RaceID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, engine.ErrRaceNotFound.Error())
	}

	times := make([]engine.LaneTime, len(in.Lanes))
	for i, l := range in.Lanes {
		times[i] = engine.LaneTime{Lane: l.Lane, Time: l.Time, Status: l.Status, Notes: l.Notes}
	}

	if !engine.CanComplete(times) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "race needs at least one valid ok time to complete")
	}
	if err := engine.TransitionStatus(race.Status, models.RaceCompleted); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	table, err := h.pointTable(ctx, in.RankingSystemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	scored := engine.Score(times, table)

	byNumber := make(map[int]*models.Lane, len(race.Lanes))
	for _, l := range race.Lanes {
		byNumber[l.Lane] = l
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

	out := make([]scoredLaneJSON, 0, len(scored))
	for i := range scored {
		s := &scored[i]
		slot := byNumber[s.Lane]
		if slot == nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("race %d has no lane %d", in.RaceID, s.Lane))
		}

		status := s.Status
		slot.ResultStatus = &status
		slot.ElapsedMs = s.ElapsedMs
		slot.FinishPosition = s.Position
		if s.Notes != "" {
			notes := s.Notes
			slot.ResultNotes = &notes
		}
		if _, err := tx.NewUpdate().Model(slot).
			Column("result_status", "elapsed_ms", "finish_position", "result_notes").
			WherePK().
			Exec(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		j := scoredLaneJSON{Lane: s.Lane, Status: s.Status, Position: s.Position, Delta: s.Delta, Points: s.Points}
		if s.ElapsedMs != nil {
			j.Elapsed = engine.FormatElapsed(*s.ElapsedMs)
		}
		if s.Err != nil {
			j.Error = s.Err.Error()
		}
		out = append(out, j)
	}

	if _, err := tx.NewUpdate().Model(race).
		Set("status = ?", models.RaceCompleted).
		WherePK().
		Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	zap.L().Info("results recorded", zap.Int("raceID", in.RaceID), zap.Int("lanes", len(out)))
	return c.JSON(http.StatusOK, map[string]any{"raceID": in.RaceID, "lanes": out})
}

// AdvanceRace moves a race to the requested status, forward only.
func (h *Handler) AdvanceRace(c echo.Context) error {
	raceID := c.QueryParam("raceID")
	to := c.QueryParam("status")
	if raceID == "" || to == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing raceID or status param")
	}

	ctx := c.Request().Context()
	race := new(models.Race)
	if err := h.db.NewSelect().Model(race).Where("race_id = ?", raceID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, engine.ErrRaceNotFound.Error())
	}

	if err := engine.TransitionStatus(race.Status, to); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	if _, err := h.db.NewUpdate().Model(race).
		Set("status = ?", to).
		WherePK().
		Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusOK)
}

// resultRow is a flat scan target for the results join query.
type resultRow struct {
	// lanes (alias l)
	Lane           int     `bun:"lane"`
	AthleteID      *int    `bun:"athlete_id"`
	ClubCode       string  `bun:"club_code"`
	CrewNumber     *int    `bun:"crew_number"`
	FinishPosition *int    `bun:"finish_position"`
	ElapsedMs      *int64  `bun:"elapsed_ms"`
	ResultStatus   *string `bun:"result_status"`
	// races (alias rc)
	RaceID    int     `bun:"race_id"`
	Name      string  `bun:"name"`
	Journey   int     `bun:"journey"`
	RaceOrder int     `bun:"race_order"`
	Session   string  `bun:"session"`
	StartTime *string `bun:"start_time"`
}

type resultLaneJSON struct {
	Lane       int    `json:"lane"`
	AthleteID  *int   `json:"athleteID,omitempty"`
	ClubCode   string `json:"clubCode,omitempty"`
	CrewNumber *int   `json:"crewNumber,omitempty"`
	Position   *int   `json:"position,omitempty"`
	Elapsed    string `json:"elapsed,omitempty"`
	Delta      string `json:"delta,omitempty"`
	Status     string `json:"status,omitempty"`
	Points     int    `json:"points"`
}

type resultRaceJSON struct {
	RaceID    int              `json:"raceID"`
	Name      string           `json:"name"`
	Journey   int              `json:"journey"`
	RaceOrder int              `json:"raceOrder"`
	Session   string           `json:"session,omitempty"`
	StartTime *string          `json:"startTime,omitempty"`
	Lanes     []resultLaneJSON `json:"lanes"`
}

const resultsJoinSQL = `
SELECT
	l.lane, l.athlete_id, l.club_code, l.crew_number,
	l.finish_position, l.elapsed_ms, l.result_status,
	rc.race_id, rc.name, rc.journey, rc.race_order, rc.session, rc.start_time
FROM lanes l
INNER JOIN races rc ON l.race_id = rc.race_id
`

// Results returns all completed races of a category, grouped by race with
// formatted times, winner deltas and points.
func (h *Handler) Results(c echo.Context) error {
	categoryID := c.QueryParam("categoryID")
	if categoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing categoryID param")
	}

	table, err := h.pointTable(c.Request().Context(), optionalIntParam(c.QueryParam("rankingSystemID")))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	var rows []resultRow
	q := resultsJoinSQL + `WHERE rc.category_id = ? AND rc.status = ? ORDER BY rc.journey, rc.race_order, l.finish_position NULLS LAST, l.lane`

	if err := h.db.NewRaw(q, categoryID, models.RaceCompleted).Scan(c.Request().Context(), &rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, groupResultsByRace(rows, table))
}

// groupResultsByRace converts flat rows into race-grouped slices, restoring
// winner deltas from the stored elapsed times.
func groupResultsByRace(rows []resultRow, table engine.PointTable) []resultRaceJSON {
	order := []int{}
	races := map[int]*resultRaceJSON{}
	winners := map[int]int64{}

	for _, row := range rows {
		if _, ok := races[row.RaceID]; !ok {
			order = append(order, row.RaceID)
			races[row.RaceID] = &resultRaceJSON{
				RaceID:    row.RaceID,
				Name:      row.Name,
				Journey:   row.Journey,
				RaceOrder: row.RaceOrder,
				Session:   row.Session,
				StartTime: row.StartTime,
				Lanes:     []resultLaneJSON{},
			}
		}
		if row.FinishPosition != nil && *row.FinishPosition == 1 && row.ElapsedMs != nil {
			winners[row.RaceID] = *row.ElapsedMs
		}
	}

	for _, row := range rows {
		lane := resultLaneJSON{
			Lane:       row.Lane,
			AthleteID:  row.AthleteID,
			ClubCode:   row.ClubCode,
			CrewNumber: row.CrewNumber,
			Position:   row.FinishPosition,
		}
		if row.ResultStatus != nil {
			lane.Status = *row.ResultStatus
		}
		if row.ElapsedMs != nil {
			lane.Elapsed = engine.FormatElapsed(*row.ElapsedMs)
			if win, ok := winners[row.RaceID]; ok && row.FinishPosition != nil && *row.FinishPosition > 1 {
				lane.Delta = engine.FormatDelta(*row.ElapsedMs - win)
			}
		}
		if row.FinishPosition != nil && lane.Status == models.ResultOK {
			lane.Points = engine.Points(table, *row.FinishPosition)
		}
		races[row.RaceID].Lanes = append(races[row.RaceID].Lanes, lane)
	}

	out := make([]resultRaceJSON, 0, len(order))
	for _, id := range order {
		out = append(out, *races[id])
	}
	return out
}

type standingJSON struct {
	ClubCode string `json:"clubCode"`
	Points   int    `json:"points"`
	Firsts   int    `json:"firsts"`
}

// Standings sums points per club across the completed races of a category.
func (h *Handler) Standings(c echo.Context) error {
	categoryID := c.QueryParam("categoryID")
	if categoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing categoryID param")
	}

	ctx := c.Request().Context()
	table, err := h.pointTable(ctx, optionalIntParam(c.QueryParam("rankingSystemID")))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	var rows []resultRow
	q := resultsJoinSQL + `WHERE rc.category_id = ? AND rc.status = ? AND l.finish_position IS NOT NULL AND l.result_status = ?`
	if err := h.db.NewRaw(q, categoryID, models.RaceCompleted, models.ResultOK).Scan(ctx, &rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	totals := map[string]*standingJSON{}
	codes := []string{}
	for _, row := range rows {
		st, ok := totals[row.ClubCode]
		if !ok {
			st = &standingJSON{ClubCode: row.ClubCode}
			totals[row.ClubCode] = st
			codes = append(codes, row.ClubCode)
		}
		st.Points += engine.Points(table, *row.FinishPosition)
		if *row.FinishPosition == 1 {
			st.Firsts++
		}
	}

	out := make([]standingJSON, 0, len(codes))
	for _, code := range codes {
		out = append(out, *totals[code])
	}
	// Highest total first, firsts as tie break.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Firsts > out[j].Firsts
	})

	return c.JSON(http.StatusOK, out)
}

// pointTable loads the points of an explicitly selected ranking system.
// A nil id means the engine's built-in default table.
func (h *Handler) pointTable(ctx context.Context, id *int) (engine.PointTable, error) {
	if id == nil {
		return nil, nil
	}
	rs := new(models.RankingSystem)
	if err := h.db.NewSelect().Model(rs).
		Where("ranking_system_id = ?", *id).
		Where("active").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("ranking system %d not found or inactive", *id)
	}
	return engine.PointTable(rs.Points), nil
}

func optionalIntParam(s string) *int {
	if s == "" {
		return nil
	}
	n, err := atoiParam(s)
	if err != nil {
		return nil
	}
	return &n
}
