package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_date   TEXT NOT NULL,
		tier       TEXT NOT NULL,
		title      TEXT DEFAULT '',
		page_id    TEXT DEFAULT '',
		error      TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_report_runs_date ON report_runs(run_date);
	CREATE INDEX IF NOT EXISTS idx_report_runs_tier ON report_runs(tier);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// RunRecord is one row of report run history.
type RunRecord struct {
	ID        int64
	RunDate   string
	Tier      string
	Title     string
	PageID    string
	Error     string
	CreatedAt time.Time
}

func runRecordsFromResult(result *RunResult) []RunRecord {
	var records []RunRecord
	for _, t := range result.Tiers {
		r := RunRecord{
			RunDate: result.Date,
			Tier:    string(t.Type),
			Title:   t.Title,
			PageID:  t.PageID,
		}
		if t.Err != nil {
			r.Error = t.Err.Error()
		}
		records = append(records, r)
	}
	return records
}

func InsertRunRecords(db *sql.DB, records []RunRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO report_runs (run_date, tier, title, page_id, error)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		_, err := stmt.Exec(r.RunDate, r.Tier, r.Title, r.PageID, r.Error)
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	return inserted, tx.Commit()
}

func GetRunsByDate(db *sql.DB, runDate string) ([]RunRecord, error) {
	rows, err := db.Query(
		`SELECT id, run_date, tier, title, page_id, error, created_at
		 FROM report_runs WHERE run_date = ? ORDER BY id`,
		runDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(&r.ID, &r.RunDate, &r.Tier, &r.Title, &r.PageID, &r.Error, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func GetRecentRuns(db *sql.DB, limit int) ([]RunRecord, error) {
	rows, err := db.Query(
		`SELECT id, run_date, tier, title, page_id, error, created_at
		 FROM report_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		err := rows.Scan(&r.ID, &r.RunDate, &r.Tier, &r.Title, &r.PageID, &r.Error, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// HasSuccessfulRun reports whether a page was already written for the
// date and tier. Used to avoid duplicate pages on manual re-runs.
func HasSuccessfulRun(db *sql.DB, runDate, tier string) (bool, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM report_runs
		 WHERE run_date = ? AND tier = ? AND page_id <> ''`,
		runDate, tier,
	).Scan(&count)
	return count > 0, err
}
