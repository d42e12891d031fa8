package main

import (
	"errors"
	"fmt"
	"log"
)

// ReportService drives one report run: fetch, normalize, dedupe, aggregate,
// format and write, for each tier the date calls for.
type ReportService struct {
	store    WorkspaceStore
	members  *MemberDirectory
	cal      *Calendar
	agg      *Aggregator
	teamName string
}

func NewReportService(store WorkspaceStore, members *MemberDirectory, cal *Calendar, teamName string) *ReportService {
	return &ReportService{
		store:    store,
		members:  members,
		cal:      cal,
		agg:      NewAggregator(members),
		teamName: teamName,
	}
}

// TierResult is the outcome of one report tier within a run.
type TierResult struct {
	Type   ReportType
	Title  string
	PageID string
	Err    error
}

// RunResult is the outcome of one full run. Skipped runs produced nothing
// because the date was a holiday.
type RunResult struct {
	Date    string
	Skipped bool
	Tiers   []TierResult
}

// GenerateAndSaveReports builds and writes every report tier due on date.
// Holidays short-circuit the entire run. A failure in one tier never stops
// the others; the returned error joins the per-tier failures while RunResult
// carries the full per-tier picture.
func (s *ReportService) GenerateAndSaveReports(date string) (*RunResult, error) {
	result := &RunResult{Date: date}

	if s.cal.IsHoliday(date) {
		log.Printf("run %s skipped: holiday", date)
		result.Skipped = true
		return result, nil
	}

	payloads := []*ReportPayload{}
	addTier := func(t ReportType, p *ReportPayload, err error) {
		if err != nil {
			log.Printf("%s report build failed: %v", t, err)
			result.Tiers = append(result.Tiers, TierResult{Type: t, Err: err})
			return
		}
		payloads = append(payloads, p)
	}

	daily, err := s.BuildDailyReport(date)
	addTier(ReportDaily, daily, err)

	if s.cal.IsLastBusinessDayOfWeek(date) {
		weekly, err := s.BuildWeeklyReport(date)
		addTier(ReportWeekly, weekly, err)
	}
	if s.cal.IsLastBusinessDayOfMonth(date) {
		monthly, err := s.BuildMonthlyReport(date)
		addTier(ReportMonthly, monthly, err)
	}

	written, failed := 0, 0
	for _, p := range payloads {
		pageID, err := s.savePage(p)
		tier := TierResult{Type: p.Type, Title: p.Title, PageID: pageID, Err: err}
		if err != nil {
			log.Printf("%s report write failed: %v", p.Type, err)
			failed++
		} else {
			log.Printf("%s report page created: %s", p.Type, pageID)
			written++
		}
		result.Tiers = append(result.Tiers, tier)
	}
	log.Printf("run %s done: %d pages written, %d failed", date, written, failed)

	var errs []error
	for _, t := range result.Tiers {
		if t.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Type, t.Err))
		}
	}
	return result, errors.Join(errs...)
}

// BuildDailyReport produces the daily payload: in-progress and planned
// sections plus today's effort summaries.
func (s *ReportService) BuildDailyReport(date string) (*ReportPayload, error) {
	pages, err := FetchDailyRecords(s.store)
	if err != nil {
		return nil, fmt.Errorf("fetching daily records: %w", err)
	}
	records := NormalizeRecords(pages, s.members)
	log.Printf("daily build date=%s records=%d", date, len(records))

	sections := s.agg.DailySections(records, date)

	var todayRecords []TaskRecord
	for _, r := range records {
		if r.IsToday {
			todayRecords = append(todayRecords, r)
		}
	}
	byPerson := s.agg.EffortByPerson(todayRecords, true)

	return &ReportPayload{
		Type:              ReportDaily,
		Title:             DailyReportTitle(s.teamName, date),
		Date:              date,
		Text:              RenderSections(sections, DailyReportTitle(s.teamName, date)),
		EffortText:        RenderEffortByPerson(byPerson, effortUnitDay, true, false),
		EffortByGroupText: RenderEffortByGroup(s.agg.EffortByGroup(todayRecords), effortUnitDay),
		Sections:          sections,
		ByPerson:          byPerson,
	}, nil
}

// BuildWeeklyReport produces the weekly payload from this week's records,
// deduplicated across the week's daily rows.
func (s *ReportService) BuildWeeklyReport(date string) (*ReportPayload, error) {
	pages, err := FetchWeeklyRecords(s.store)
	if err != nil {
		return nil, fmt.Errorf("fetching weekly records: %w", err)
	}
	records := DedupeRecords(NormalizeRecords(pages, s.members))
	log.Printf("weekly build date=%s records=%d", date, len(records))

	sections := s.agg.WeeklySections(records)
	byPerson := s.agg.EffortByPerson(records, false)

	return &ReportPayload{
		Type:              ReportWeekly,
		Title:             WeeklyReportTitle(s.teamName, s.cal.WeekOfMonth(date)),
		Date:              date,
		PeriodLabel:       s.cal.WeekOfMonth(date),
		EffortText:        RenderEffortByPerson(byPerson, effortUnitDay, false, true),
		EffortByGroupText: RenderEffortByGroup(s.agg.EffortByGroup(records), effortUnitDay),
		Sections:          sections,
		ByPerson:          byPerson,
	}, nil
}

// BuildMonthlyReport produces the monthly payload: in-progress versus
// completed sections over the month's deduplicated records.
func (s *ReportService) BuildMonthlyReport(date string) (*ReportPayload, error) {
	firstDay, lastDay := s.cal.MonthRange(date)
	pages, err := FetchMonthlyRecords(s.store, firstDay, lastDay)
	if err != nil {
		return nil, fmt.Errorf("fetching monthly records: %w", err)
	}
	records := DedupeRecords(NormalizeRecords(pages, s.members))
	log.Printf("monthly build date=%s records=%d", date, len(records))

	sections := s.agg.MonthlySections(records)
	byPerson := s.agg.EffortByPerson(records, false)

	label := monthLabel(date)
	return &ReportPayload{
		Type:              ReportMonthly,
		Title:             MonthlyReportTitle(s.teamName, label),
		Date:              date,
		PeriodLabel:       label,
		EffortText:        RenderEffortByPerson(byPerson, effortUnitDay, false, true),
		EffortByGroupText: RenderEffortByGroup(s.agg.EffortByGroup(records), effortUnitDay),
		Sections:          sections,
		ByPerson:          byPerson,
	}, nil
}

// monthLabel turns YYYY-MM-DD into "YYYY년 M월".
func monthLabel(date string) string {
	if len(date) < 7 {
		return date
	}
	year := date[:4]
	month := date[5:7]
	if month[0] == '0' {
		month = month[1:]
	}
	return fmt.Sprintf("%s년 %s월", year, month)
}

// savePage renders a payload into blocks and writes the report page.
func (s *ReportService) savePage(p *ReportPayload) (string, error) {
	blocks := buildPageBlocks(p, s.teamName)
	props := pageProperties(p.Title, p.Date, p.Type)
	pageID, err := s.store.CreatePage(props, blocks, pageIcon(p.Type))
	if err != nil {
		return "", fmt.Errorf("creating %s report page: %w", p.Type, err)
	}
	return pageID, nil
}
