package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oarstack/regatta/engine"
)

type historyRow struct {
	// lanes
	Lane           int     `bun:"lane"`
	ClubCode       string  `bun:"club_code"`
	CrewNumber     *int    `bun:"crew_number"`
	FinishPosition *int    `bun:"finish_position"`
	ElapsedMs      *int64  `bun:"elapsed_ms"`
	ResultStatus   *string `bun:"result_status"`
	// races
	RaceID    int     `bun:"race_id"`
	Name      string  `bun:"name"`
	Journey   int     `bun:"journey"`
	StartTime *string `bun:"start_time"`
	// categories
	CategoryTitle string `bun:"title"`
}

type historyJSON struct {
	RaceID        int     `json:"raceID"`
	Race          string  `json:"race"`
	Journey       int     `json:"journey"`
	StartTime     *string `json:"startTime,omitempty"`
	CategoryTitle string  `json:"category,omitempty"`
	Lane          int     `json:"lane"`
	ClubCode      string  `json:"clubCode,omitempty"`
	CrewNumber    *int    `json:"crewNumber,omitempty"`
	Position      *int    `json:"position,omitempty"`
	Elapsed       string  `json:"elapsed,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// AthleteHistory returns the last 8 races an athlete rowed in, newest first,
// including crew boats the athlete was part of.
func (h *Handler) AthleteHistory(c echo.Context) error {
	athleteID := c.QueryParam("athleteID")
	if athleteID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing athleteID param")
	}
	aid, err := atoiParam(athleteID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad athleteID param")
	}

	var rows []historyRow
	err = h.db.NewRaw(`
		SELECT l.lane, l.club_code, l.crew_number, l.finish_position,
		       l.elapsed_ms, l.result_status,
		       rc.race_id, rc.name, rc.journey, rc.start_time,
		       ct.title
		FROM lanes l
		INNER JOIN races      rc ON l.race_id     = rc.race_id
		INNER JOIN categories ct ON rc.category_id = ct.category_id
		WHERE l.athlete_id = ? OR l.crew @> to_jsonb(?::int)
		ORDER BY rc.race_id DESC
		LIMIT 8`,
		aid, aid,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]historyJSON, len(rows))
	for i, row := range rows {
		result[i] = historyJSON{
			RaceID:        row.RaceID,
			Race:          row.Name,
			Journey:       row.Journey,
			StartTime:     row.StartTime,
			CategoryTitle: row.CategoryTitle,
			Lane:          row.Lane,
			ClubCode:      row.ClubCode,
			CrewNumber:    row.CrewNumber,
			Position:      row.FinishPosition,
		}
		if row.ElapsedMs != nil {
			result[i].Elapsed = engine.FormatElapsed(*row.ElapsedMs)
		}
		if row.ResultStatus != nil {
			result[i].Status = *row.ResultStatus
		}
	}

	return c.JSON(http.StatusOK, result)
}
