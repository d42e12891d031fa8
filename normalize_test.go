package main

import (
	"testing"

	"github.com/tidwall/gjson"
)

const samplePageJSON = `{
	"id": "page-1",
	"properties": {
		"Name": {"title": [{"plain_text": "PMS 연동 개선"}]},
		"Customer": {"select": {"name": "A사"}},
		"Group": {"select": {"name": "DCIM프로젝트"}},
		"SubGroup": {"select": {"name": "구현"}},
		"Progress": {"number": 0.5},
		"Date": {"date": {"start": "2025-04-25", "end": "2025-04-28"}},
		"isToday": {"formula": {"boolean": true}},
		"isTomorrow": {"formula": {"boolean": false}},
		"ManDay": {"number": 0.5},
		"PmsNumber": {"number": 1234},
		"PmsLink": {"formula": {"string": "https://pms.example/1234"}},
		"Person": {"people": [{"person": {"email": "lead@cube.example"}}]}
	}
}`

func TestNormalizeRecord(t *testing.T) {
	members := testMembers(t)

	records := NormalizeRecords([]gjson.Result{gjson.Parse(samplePageJSON)}, members)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.Title != "PMS 연동 개선" {
		t.Fatalf("Title = %q", r.Title)
	}
	if r.Customer != "A사" || r.Group != "DCIM프로젝트" || r.SubGroup != "구현" {
		t.Fatalf("select fields = %q / %q / %q", r.Customer, r.Group, r.SubGroup)
	}
	if r.ProgressRate != 50 {
		t.Fatalf("ProgressRate = %v, want 50 (stored fraction scaled to percent)", r.ProgressRate)
	}
	if r.Date.Start != "2025-04-25" || r.Date.End != "2025-04-28" {
		t.Fatalf("Date = %+v", r.Date)
	}
	if !r.IsToday || r.IsTomorrow {
		t.Fatalf("day flags = today=%v tomorrow=%v", r.IsToday, r.IsTomorrow)
	}
	if r.Effort != 0.5 {
		t.Fatalf("Effort = %v", r.Effort)
	}
	if r.TicketID != 1234 || r.TicketLink != "https://pms.example/1234" {
		t.Fatalf("ticket = %d %q", r.TicketID, r.TicketLink)
	}
	if r.Person != "김철수" {
		t.Fatalf("Person = %q, want resolved display name", r.Person)
	}
}

func TestNormalizeRecordMultipleAssignees(t *testing.T) {
	members := testMembers(t)
	page := gjson.Parse(`{
		"id": "page-2",
		"properties": {
			"Name": {"title": [{"plain_text": "공동 작업"}]},
			"Group": {"select": {"name": "기타"}},
			"SubGroup": {"select": {"name": "분석"}},
			"ManDay": {"number": 1},
			"Person": {"people": [
				{"person": {"email": "lead@cube.example"}},
				{"person": {"email": "senior@cube.example"}}
			]}
		}
	}`)

	records := NormalizeRecords([]gjson.Result{page}, members)
	if len(records) != 2 {
		t.Fatalf("expected one record per assignee, got %d", len(records))
	}
	if records[0].Person != "김철수" || records[1].Person != "이영희" {
		t.Fatalf("persons = %q, %q", records[0].Person, records[1].Person)
	}
	// Each copy carries the full effort; daily effort sums must not halve it.
	if records[0].Effort != 1 || records[1].Effort != 1 {
		t.Fatalf("efforts = %v, %v", records[0].Effort, records[1].Effort)
	}
	if records[0].Title != records[1].Title {
		t.Fatalf("titles diverged: %q vs %q", records[0].Title, records[1].Title)
	}
}

func TestNormalizeRecordNoAssignee(t *testing.T) {
	members := testMembers(t)
	page := gjson.Parse(`{
		"id": "page-3",
		"properties": {
			"Name": {"title": [{"plain_text": "담당자 미정"}]},
			"Group": {"select": {"name": "기타"}},
			"SubGroup": {"select": {"name": "기타"}},
			"Person": {"people": []}
		}
	}`)

	records := NormalizeRecords([]gjson.Result{page}, members)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Person != "-" {
		t.Fatalf("Person = %q, want -", records[0].Person)
	}
}

func TestNormalizeSkipsMalformedPages(t *testing.T) {
	members := testMembers(t)
	noProps := gjson.Parse(`{"id": "broken-1"}`)
	noTitle := gjson.Parse(`{"id": "broken-2", "properties": {"Group": {}, "SubGroup": {}}}`)
	ok := gjson.Parse(samplePageJSON)

	records := NormalizeRecords([]gjson.Result{noProps, noTitle, ok}, members)
	if len(records) != 1 {
		t.Fatalf("expected malformed pages to be skipped, got %d records", len(records))
	}
	if records[0].Title != "PMS 연동 개선" {
		t.Fatalf("surviving record = %q", records[0].Title)
	}
}

func TestMalformedRecordError(t *testing.T) {
	err := &MalformedRecordError{PageID: "p1", Field: "properties"}
	if err.Error() != "malformed record p1: missing properties" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
