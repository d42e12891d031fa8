package main

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cubereport-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestInsertAndQueryRunRecords(t *testing.T) {
	db := newTestDB(t)

	records := []RunRecord{
		{RunDate: "2025-04-25", Tier: "daily", Title: "큐브 파트 일일업무 보고 (25.04.25)", PageID: "page-1"},
		{RunDate: "2025-04-25", Tier: "weekly", Title: "큐브 파트 주간업무 보고 (4월 4주차)", Error: "workspace write rejected"},
		{RunDate: "2025-04-24", Tier: "daily", Title: "큐브 파트 일일업무 보고 (25.04.24)", PageID: "page-0"},
	}
	inserted, err := InsertRunRecords(db, records)
	if err != nil {
		t.Fatalf("InsertRunRecords failed: %v", err)
	}
	if inserted != 3 {
		t.Fatalf("inserted = %d, want 3", inserted)
	}

	byDate, err := GetRunsByDate(db, "2025-04-25")
	if err != nil {
		t.Fatalf("GetRunsByDate failed: %v", err)
	}
	if len(byDate) != 2 {
		t.Fatalf("runs for date = %d, want 2", len(byDate))
	}
	if byDate[0].Tier != "daily" || byDate[0].PageID != "page-1" {
		t.Fatalf("first run = %+v", byDate[0])
	}
	if byDate[1].Error != "workspace write rejected" {
		t.Fatalf("failed run error = %q", byDate[1].Error)
	}

	recent, err := GetRecentRuns(db, 2)
	if err != nil {
		t.Fatalf("GetRecentRuns failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent runs = %d, want 2", len(recent))
	}
	// Newest insert first.
	if recent[0].RunDate != "2025-04-24" {
		t.Fatalf("recent[0] = %+v", recent[0])
	}
}

func TestInsertRunRecordsEmpty(t *testing.T) {
	db := newTestDB(t)
	inserted, err := InsertRunRecords(db, nil)
	if err != nil {
		t.Fatalf("InsertRunRecords(nil) failed: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("inserted = %d, want 0", inserted)
	}
}

func TestHasSuccessfulRun(t *testing.T) {
	db := newTestDB(t)

	if _, err := InsertRunRecords(db, []RunRecord{
		{RunDate: "2025-04-25", Tier: "daily", PageID: "page-1"},
		{RunDate: "2025-04-25", Tier: "weekly", Error: "failed"},
	}); err != nil {
		t.Fatalf("InsertRunRecords failed: %v", err)
	}

	ok, err := HasSuccessfulRun(db, "2025-04-25", "daily")
	if err != nil {
		t.Fatalf("HasSuccessfulRun failed: %v", err)
	}
	if !ok {
		t.Fatal("expected daily run to be recorded as successful")
	}

	ok, err = HasSuccessfulRun(db, "2025-04-25", "weekly")
	if err != nil {
		t.Fatalf("HasSuccessfulRun failed: %v", err)
	}
	if ok {
		t.Fatal("failed weekly run must not count as successful")
	}
}

func TestRunRecordsFromResult(t *testing.T) {
	result := &RunResult{
		Date: "2025-04-25",
		Tiers: []TierResult{
			{Type: ReportDaily, Title: "일일", PageID: "page-1"},
			{Type: ReportWeekly, Title: "주간", Err: errors.New("boom")},
		},
	}

	records := runRecordsFromResult(result)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Tier != "daily" || records[0].PageID != "page-1" || records[0].Error != "" {
		t.Fatalf("records[0] = %+v", records[0])
	}
	if records[1].Tier != "weekly" || records[1].Error != "boom" {
		t.Fatalf("records[1] = %+v", records[1])
	}
}
