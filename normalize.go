package main

import (
	"fmt"
	"log"

	"github.com/tidwall/gjson"
)

// MalformedRecordError marks a raw page whose structural containers are
// missing. Such records are logged and skipped; they never abort a batch.
type MalformedRecordError struct {
	PageID string
	Field  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: missing %s", e.PageID, e.Field)
}

// NormalizeRecords maps raw workspace pages into TaskRecords, resolving
// assignee emails through the member directory. Malformed pages are skipped.
func NormalizeRecords(pages []gjson.Result, members *MemberDirectory) []TaskRecord {
	var records []TaskRecord
	skipped := 0
	for _, page := range pages {
		recs, err := normalizeRecord(page, members)
		if err != nil {
			log.Printf("skipping record: %v", err)
			skipped++
			continue
		}
		records = append(records, recs...)
	}
	if skipped > 0 {
		log.Printf("normalize done records=%d skipped=%d", len(records), skipped)
	}
	return records
}

// normalizeRecord converts one raw page into one TaskRecord per assignee.
// A page with N assignees fans out into N independent value copies so that
// per-person grouping can later reorder or default fields on each copy
// without affecting the others. Effort is carried on every copy unchanged.
func normalizeRecord(page gjson.Result, members *MemberDirectory) ([]TaskRecord, error) {
	pageID := page.Get("id").String()

	props := page.Get("properties")
	if !props.Exists() {
		return nil, &MalformedRecordError{PageID: pageID, Field: "properties"}
	}
	if !props.Get("Name.title").Exists() {
		return nil, &MalformedRecordError{PageID: pageID, Field: "Name.title"}
	}
	if !props.Get("Group").Exists() || !props.Get("SubGroup").Exists() {
		return nil, &MalformedRecordError{PageID: pageID, Field: "Group/SubGroup"}
	}

	base := TaskRecord{
		Title:    props.Get("Name.title.0.plain_text").String(),
		Customer: props.Get("Customer.select.name").String(),
		Group:    props.Get("Group.select.name").String(),
		SubGroup: props.Get("SubGroup.select.name").String(),
		// Progress is stored as a 0-1 fraction; reports speak percent.
		ProgressRate: props.Get("Progress.number").Float() * 100,
		Date: DateRange{
			Start: props.Get("Date.date.start").String(),
			End:   props.Get("Date.date.end").String(),
		},
		IsToday:    props.Get("isToday.formula.boolean").Bool(),
		IsTomorrow: props.Get("isTomorrow.formula.boolean").Bool(),
		Effort:     props.Get("ManDay.number").Float(),
		TicketID:   props.Get("PmsNumber.number").Int(),
		TicketLink: props.Get("PmsLink.formula.string").String(),
	}

	people := props.Get("Person.people").Array()
	if len(people) == 0 {
		rec := base
		rec.Person = members.NameOf("")
		return []TaskRecord{rec}, nil
	}

	records := make([]TaskRecord, 0, len(people))
	for _, p := range people {
		rec := base
		rec.Person = members.NameOf(p.Get("person.email").String())
		records = append(records, rec)
	}
	return records, nil
}
