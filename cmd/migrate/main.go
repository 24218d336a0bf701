// cmd/migrate/main.go
// Imports the legacy federation roster from a remote MySQL database into the
// local PostgreSQL database: clubs, athletes, memberships, categories, boat
// classes and entry records.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/federation?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/oarstack/regatta/config"
	bundb "github.com/oarstack/regatta/db"
	"github.com/oarstack/regatta/engine"
	"github.com/oarstack/regatta/models"
)

const batchSize = 500

func main() {
	ctx := context.Background()

	cfg := config.Load()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/federation?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"clubs", func() (int, error) { return migrateClubs(ctx, myDB, pgDB) }},
		{"athletes", func() (int, error) { return migrateAthletes(ctx, myDB, pgDB) }},
		{"memberships", func() (int, error) { return migrateMemberships(ctx, myDB, pgDB) }},
		{"categories", func() (int, error) { return migrateCategories(ctx, myDB, pgDB) }},
		{"boat_classes", func() (int, error) { return migrateBoatClasses(ctx, myDB, pgDB) }},
		{"entries", func() (int, error) { return migrateEntries(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullStr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pgDB *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pgDB.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// flush appends and drains the batch once it reaches batchSize.
func flush[T any](ctx context.Context, pgDB *bun.DB, batch []T, total int) ([]T, int, error) {
	if len(batch) < batchSize {
		return batch, total, nil
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return batch, total, err
	}
	return batch[:0], total + len(batch), nil
}

// --- per-table migrations ---

func migrateClubs(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx, "SELECT clubID, code, name, notes FROM clubs")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Club
	total := 0
	for rows.Next() {
		var (
			r     models.Club
			notes sql.NullString
		)
		if err := rows.Scan(&r.ClubID, &r.Code, &r.Name, &notes); err != nil {
			return total, err
		}
		r.Notes = nullStr(notes)
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateAthletes(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		`SELECT athleteID, firstName, lastName, birthDate, gender, isJunior, isMaster
		 FROM athletes`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Athlete
	total := 0
	for rows.Next() {
		var (
			r    models.Athlete
			born sql.NullTime
		)
		if err := rows.Scan(&r.AthleteID, &r.FirstName, &r.LastName, &born,
			&r.Gender, &r.IsJunior, &r.IsMaster); err != nil {
			return total, err
		}
		if born.Valid {
			d := fmtDate(born.Time)
			r.BirthDate = &d
		}
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateMemberships(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT id, athleteID, clubID, kind, active FROM memberships")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Membership
	total := 0
	for rows.Next() {
		var r models.Membership
		if err := rows.Scan(&r.ID, &r.AthleteID, &r.ClubID, &r.Kind, &r.Active); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateCategories(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT categoryID, title, abbrev, gender, minAge, maxAge FROM categories")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Category
	total := 0
	for rows.Next() {
		var (
			r              models.Category
			minAge, maxAge sql.NullInt64
		)
		if err := rows.Scan(&r.CategoryID, &r.Title, &r.Abbrev, &r.Gender, &minAge, &maxAge); err != nil {
			return total, err
		}
		r.MinAge = nullInt(minAge)
		r.MaxAge = nullInt(maxAge)
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateBoatClasses(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	rows, err := myDB.QueryContext(ctx,
		"SELECT boatClassID, code, crewSize, weight FROM boatClasses")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.BoatClass
	total := 0
	for rows.Next() {
		var r models.BoatClass
		if err := rows.Scan(&r.BoatClassID, &r.Code, &r.CrewSize, &r.Weight); err != nil {
			return total, err
		}
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

func migrateEntries(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	// Legacy entries store the crew number as free text ("CNL 3", "crew-12");
	// the engine's parser normalises it to an integer on the way in.
	rows, err := myDB.QueryContext(ctx,
		`SELECT entryID, categoryID, boatClassID, athleteID, clubID, clubCode,
		        crewLabel, seed, notes, status
		 FROM entries`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []models.Entry
	total := 0
	for rows.Next() {
		var (
			r         models.Entry
			athleteID sql.NullInt64
			clubID    sql.NullInt64
			clubCode  sql.NullString
			crewLabel sql.NullString
			seed      sql.NullInt64
			notes     sql.NullString
		)
		if err := rows.Scan(&r.EntryID, &r.CategoryID, &r.BoatClassID, &athleteID,
			&clubID, &clubCode, &crewLabel, &seed, &notes, &r.Status); err != nil {
			return total, err
		}
		r.AthleteID = nullInt(athleteID)
		r.ClubID = nullInt(clubID)
		if clubCode.Valid {
			r.ClubCode = clubCode.String
		}
		if crewLabel.Valid {
			r.CrewNumber = engine.ParseCrewNumber(crewLabel.String)
		}
		r.Seed = nullInt(seed)
		if notes.Valid {
			r.Notes = notes.String
		}
		batch = append(batch, r)
		if batch, total, err = flush(ctx, pgDB, batch, total); err != nil {
			return total, err
		}
	}
	if err := bulkInsert(ctx, pgDB, batch); err != nil {
		return total, err
	}
	return total + len(batch), rows.Err()
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"users_id_seq", "users", "id"},
		{"clubs_club_id_seq", "clubs", "club_id"},
		{"athletes_athlete_id_seq", "athletes", "athlete_id"},
		{"memberships_id_seq", "memberships", "id"},
		{"categories_category_id_seq", "categories", "category_id"},
		{"boat_classes_boat_class_id_seq", "boat_classes", "boat_class_id"},
		{"entries_entry_id_seq", "entries", "entry_id"},
		{"races_race_id_seq", "races", "race_id"},
		{"lanes_lane_id_seq", "lanes", "lane_id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
