package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/oarstack/regatta/engine"
	"github.com/oarstack/regatta/models"
)

type entrySaveJSON struct {
	CategoryID  int    `json:"categoryID"`
	BoatClassID int    `json:"boatClassID"`
	AthleteID   *int   `json:"athleteID,omitempty"`
	Crew        []int  `json:"crew,omitempty"`
	ClubID      *int   `json:"clubID,omitempty"`
	Seed        *int   `json:"seed,omitempty"`
	Notes       string `json:"notes,omitempty"`
	// Force admits the entry despite advisory eligibility failures.
	Force                 bool `json:"force,omitempty"`
	AllowJuniorsInSenior  bool `json:"allowJuniorsInSenior,omitempty"`
	AllowMastersInSenior  bool `json:"allowMastersInSenior,omitempty"`
	BypassAgeVerification bool `json:"bypassAgeVerification,omitempty"`
}

// Entries lists registrations for a category, optionally narrowed to one
// boat class.
func (h *Handler) Entries(c echo.Context) error {
	categoryID := c.QueryParam("categoryID")
	if categoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing categoryID param")
	}

	var entries []models.Entry
	q := h.db.NewSelect().Model(&entries).
		Where("category_id = ?", categoryID).
		Order("entry_id")
	if bc := c.QueryParam("boatClassID"); bc != "" {
		q = q.Where("boat_class_id = ?", bc)
	}

	if err := q.Scan(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, entries)
}

// CreateEntry screens the athlete or crew against the category, stamps the
// next club crew number and saves the registration. Eligibility failures are
// advisory: they block with 422 unless force is set.
func (h *Handler) CreateEntry(c echo.Context) error {
	var in entrySaveJSON
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.CategoryID == 0 || in.BoatClassID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "categoryID and boatClassID are required")
	}
	if in.AthleteID == nil && len(in.Crew) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "athleteID or crew is required")
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

	athleteIDs := in.Crew
	if in.AthleteID != nil {
		athleteIDs = []int{*in.AthleteID}
	}
	if len(in.Crew) > 0 && len(in.Crew) != boat.CrewSize {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, engine.ErrCrewSizeMismatch.Error())
	}

	var athletes []models.Athlete
	if err := h.db.NewSelect().Model(&athletes).
		Where("athlete_id IN (?)", bun.In(athleteIDs)).
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(athletes) != len(athleteIDs) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown athlete in crew")
	}

	ov := engine.Overrides{
		AllowJuniorsInSenior:  in.AllowJuniorsInSenior,
		AllowMastersInSenior:  in.AllowMastersInSenior,
		BypassAgeVerification: in.BypassAgeVerification,
	}
	failures := map[int][]string{}
	for i := range athletes {
		for _, f := range engine.CheckEligibility(&athletes[i], category, h.SeasonYear, ov) {
			failures[athletes[i].AthleteID] = append(failures[athletes[i].AthleteID], f.Error())
		}
	}
	if len(failures) > 0 && !in.Force {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"error":    "eligibility check failed",
			"failures": failures,
		})
	}

	club, err := h.resolveClub(ctx, in.ClubID, athleteIDs[0])
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	entry := models.NewDraft(in.CategoryID, in.BoatClassID)
	entry.AthleteID = in.AthleteID
	entry.Crew = in.Crew
	entry.Seed = in.Seed
	entry.Notes = in.Notes
	entry.Status = models.EntryPending
	if club != nil {
		if club.ID != 0 {
			id := club.ID
			entry.ClubID = &id
		}
		entry.ClubCode = club.Code

		number, err := h.proposeCrewNumber(ctx, *club, in.CategoryID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		entry.CrewNumber = number
	}

	if _, err := h.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	zap.L().Info("entry created",
		zap.Int("entryID", entry.EntryID),
		zap.Int("categoryID", entry.CategoryID),
		zap.String("clubCode", entry.ClubCode),
	)
	return c.JSON(http.StatusCreated, entry)
}

// WithdrawEntry marks an entry withdrawn. Withdrawal is terminal: the row
// stays for the record but releases its crew number and leaves the draw.
func (h *Handler) WithdrawEntry(c echo.Context) error {
	entryID := c.QueryParam("entryID")
	if entryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing entryID param")
	}

	res, err := h.db.NewUpdate().
		Model((*models.Entry)(nil)).
		Set("status = ?", models.EntryWithdrawn).
		Where("entry_id = ?", entryID).
		Exec(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "entry not found")
	}

	return c.NoContent(http.StatusOK)
}

// NextCrewNumber proposes the next free crew number for a club in a
// category without reserving it. Repeated calls return the same number
// until an entry commits it.
func (h *Handler) NextCrewNumber(c echo.Context) error {
	categoryID := c.QueryParam("categoryID")
	clubID := c.QueryParam("clubID")
	if categoryID == "" || clubID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing categoryID or clubID param")
	}

	ctx := c.Request().Context()
	club := new(models.Club)
	if err := h.db.NewSelect().Model(club).Where("club_id = ?", clubID).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "club not found")
	}

	catID, err := atoiParam(categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad categoryID param")
	}
	number, err := h.proposeCrewNumber(ctx, engine.IdentityOf(club), catID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{"clubID": club.ClubID, "next": number})
}

// proposeCrewNumber gathers the three collision sources for a club within a
// category and delegates to the engine.
func (h *Handler) proposeCrewNumber(ctx context.Context, club engine.ClubIdentity, categoryID int) (*int, error) {
	var persisted []*models.Entry
	if err := h.db.NewSelect().Model(&persisted).
		Where("category_id = ?", categoryID).
		Scan(ctx); err != nil {
		return nil, err
	}

	var races []*models.Race
	if err := h.db.NewSelect().Model(&races).
		Relation("Lanes").
		Where("category_id = ?", categoryID).
		Scan(ctx); err != nil {
		return nil, err
	}

	// The server holds no unsaved drafts; clients screen their own.
	return engine.NextCrewNumber(club, nil, races, persisted), nil
}

// resolveClub prefers the explicit club id and falls back to the athlete's
// active membership.
func (h *Handler) resolveClub(ctx context.Context, clubID *int, athleteID int) (*engine.ClubIdentity, error) {
	if clubID != nil {
		club := new(models.Club)
		if err := h.db.NewSelect().Model(club).Where("club_id = ?", *clubID).Scan(ctx); err != nil {
			return nil, err
		}
		ci := engine.IdentityOf(club)
		return &ci, nil
	}

	var memberships []models.Membership
	if err := h.db.NewSelect().Model(&memberships).
		Relation("Club").
		Where("m.athlete_id = ?", athleteID).
		Scan(ctx); err != nil {
		return nil, err
	}

	clubs := make(map[int]*models.Club, len(memberships))
	for i := range memberships {
		if memberships[i].Club != nil {
			clubs[memberships[i].ClubID] = memberships[i].Club
		}
	}
	return engine.ResolveActiveClub(memberships, clubs), nil
}
