package main

// DateRange is a civil date span. Start and End are YYYY-MM-DD strings;
// End is empty for open-ended tasks.
type DateRange struct {
	Start string
	End   string
}

// TaskRecord is one normalized unit of work, one per assignee.
type TaskRecord struct {
	Title        string
	Customer     string
	Group        string
	SubGroup     string
	Person       string // resolved display name
	ProgressRate float64
	Date         DateRange
	IsToday      bool
	IsTomorrow   bool
	Effort       float64 // man-days
	TicketID     int64   // PMS ticket number, 0 when absent
	TicketLink   string
}

// effectiveDate is the date used when comparing two records for the same task.
func (r TaskRecord) effectiveDate() string {
	if r.Date.End != "" {
		return r.Date.End
	}
	return r.Date.Start
}

// IsComplete reports whether the record carries enough data to be grouped.
func (r TaskRecord) IsComplete() bool {
	return r.Date.Start != "" && r.Group != "" && r.SubGroup != "" && r.Person != ""
}

// SubGroupItems holds the records of one subgroup, in render order.
type SubGroupItems struct {
	SubGroup string
	Items    []TaskRecord
}

// GroupedReport is one top-level group with its subgroup partition.
type GroupedReport struct {
	Group     string
	SubGroups []SubGroupItems
}

// SectionType labels a report section.
type SectionType string

const (
	SectionInProgress SectionType = "진행업무"
	SectionPlanned    SectionType = "예정업무"
	SectionCompleted  SectionType = "완료업무"
)

// ReportSection is one section of a report (in-progress, planned or completed).
type ReportSection struct {
	Type   SectionType
	Groups []GroupedReport
}

// LeaveEntry is one day of leave taken by a person during the report period.
type LeaveEntry struct {
	Date      string // YYYY-MM-DD
	DayOfWeek string // 월..일
	Kind      string // 연차 or 반차
}

// PersonSummary is the per-person effort rollup.
type PersonSummary struct {
	Name        string
	TotalEffort float64
	Records     []TaskRecord
	IsComplete  bool // has at least one complete record for today
	Leave       []LeaveEntry
}

// ReportType discriminates the three report tiers. It is set once at
// construction and never inferred from payload shape.
type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
)

// ReportPayload is the render-ready output of one report tier.
type ReportPayload struct {
	Type        ReportType
	Title       string
	Date        string // run date, YYYY-MM-DD
	PeriodLabel string // weekly: "M월 N주차", monthly: "YYYY년 M월"

	Text              string // full section text (daily code-block body)
	EffortText        string // [인원별 공수] block
	EffortByGroupText string // [그룹별 공수] block

	Sections []ReportSection
	ByPerson []PersonSummary
}

// Group names with special ordering or partition rules.
const (
	groupPriority    = "DCIM프로젝트"
	groupSiteSupport = "사이트 지원"
	groupDefect      = "결함처리"
	groupOJT         = "OJT"
	groupEtc         = "기타"
	groupIncomplete  = "데이터 부족"
	groupMeeting     = "회의"
)

// specialGroups always sort after general groups, in this order.
var specialGroups = []string{groupSiteSupport, groupDefect, groupOJT, groupEtc}

// subGroupOrder is the canonical subgroup render order. Subgroup names not in
// this list sort after the canonical ones, alphabetically.
var subGroupOrder = []string{"분석", "구현", "기타"}

// Subgroup names that represent leave rather than work.
const (
	subGroupFullLeave = "연차"
	subGroupHalfLeave = "반차"
)
