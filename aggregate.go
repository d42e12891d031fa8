package main

import (
	"sort"
	"strings"
)

// Aggregator computes the grouped structures and effort summaries a report
// is rendered from. It never fails: absent fields default to "-" or 0 and
// structurally broken records were already filtered by the normalizer.
type Aggregator struct {
	members *MemberDirectory
}

func NewAggregator(members *MemberDirectory) *Aggregator {
	return &Aggregator{members: members}
}

// dayPartition splits the daily record window into the four render sets.
type dayPartition struct {
	completeToday      []TaskRecord
	incompleteToday    []TaskRecord
	allTomorrow        []TaskRecord
	incompleteTomorrow []TaskRecord
}

// partitionByDay separates today/tomorrow records, isolates incomplete ones
// into their own sets, and rolls unfinished tasks due today forward into
// tomorrow's plan.
func (a *Aggregator) partitionByDay(records []TaskRecord, today string) dayPartition {
	var p dayPartition

	var todayRecords, tomorrowRecords []TaskRecord
	for _, r := range records {
		if r.IsToday {
			todayRecords = append(todayRecords, r)
		}
		if r.IsTomorrow {
			tomorrowRecords = append(tomorrowRecords, r)
		}
	}

	for _, r := range todayRecords {
		if r.IsComplete() {
			p.completeToday = append(p.completeToday, r)
		} else {
			p.incompleteToday = append(p.incompleteToday, r)
		}
	}
	for _, r := range tomorrowRecords {
		if r.IsComplete() {
			p.allTomorrow = append(p.allTomorrow, r)
		} else {
			p.incompleteTomorrow = append(p.incompleteTomorrow, r)
		}
	}

	// A task due today that is not finished rolls into tomorrow's plan.
	for _, r := range p.completeToday {
		dueToday := r.Date.End == today || (r.Date.End == "" && r.Date.Start == today)
		if dueToday && r.ProgressRate < 100 {
			p.allTomorrow = append(p.allTomorrow, r)
		}
	}

	return p
}

// DailySections produces the in-progress and planned sections of a daily report.
func (a *Aggregator) DailySections(records []TaskRecord, today string) []ReportSection {
	p := a.partitionByDay(records, today)
	return []ReportSection{
		{Type: SectionInProgress, Groups: a.GroupRecords(p.completeToday, p.incompleteToday)},
		{Type: SectionPlanned, Groups: a.GroupRecords(p.allTomorrow, p.incompleteTomorrow)},
	}
}

// WeeklySections produces the single in-progress section of a weekly report
// covering every record of the week.
func (a *Aggregator) WeeklySections(records []TaskRecord) []ReportSection {
	return []ReportSection{
		{Type: SectionInProgress, Groups: a.GroupRecords(records, nil)},
	}
}

// MonthlySections splits the month's records by progress: still in progress
// (0 < rate < 100) versus completed (rate == 100).
func (a *Aggregator) MonthlySections(records []TaskRecord) []ReportSection {
	var inProgress, completed []TaskRecord
	for _, r := range records {
		switch {
		case r.ProgressRate == 100:
			completed = append(completed, r)
		case r.ProgressRate > 0:
			inProgress = append(inProgress, r)
		}
	}
	return []ReportSection{
		{Type: SectionInProgress, Groups: a.GroupRecords(inProgress, nil)},
		{Type: SectionCompleted, Groups: a.GroupRecords(completed, nil)},
	}
}

// compareGroups is the total order on group names: the priority project
// first, general groups alphabetically, then the special groups in their
// listed order.
func compareGroups(ga, gb string) int {
	if ga == gb {
		return 0
	}
	if ga == groupPriority {
		return -1
	}
	if gb == groupPriority {
		return 1
	}

	ia, ib := specialGroupIndex(ga), specialGroupIndex(gb)
	switch {
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return 1
	case ib >= 0:
		return -1
	}
	return strings.Compare(ga, gb)
}

func specialGroupIndex(name string) int {
	for i, g := range specialGroups {
		if g == name {
			return i
		}
	}
	return -1
}

// subGroupRank orders subgroup names: canonical names first in their listed
// order, every other name after them (ties broken alphabetically by caller).
func subGroupRank(name string) int {
	for i, s := range subGroupOrder {
		if s == name {
			return i
		}
	}
	return len(subGroupOrder)
}

// GroupRecords partitions records by group, then by subgroup (by customer
// for the site-support group), with deterministic ordering at every level.
// Incomplete records, when present, are appended as a synthetic final group
// with their empty fields defaulted.
func (a *Aggregator) GroupRecords(records, incomplete []TaskRecord) []GroupedReport {
	byGroup := make(map[string][]TaskRecord)
	var groupNames []string
	for _, r := range records {
		if _, ok := byGroup[r.Group]; !ok {
			groupNames = append(groupNames, r.Group)
		}
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}

	sort.SliceStable(groupNames, func(i, j int) bool {
		return compareGroups(groupNames[i], groupNames[j]) < 0
	})

	grouped := make([]GroupedReport, 0, len(groupNames)+1)
	for _, group := range groupNames {
		grouped = append(grouped, a.formatGroup(group, byGroup[group]))
	}

	if len(incomplete) > 0 {
		grouped = append(grouped, incompleteGroup(incomplete))
	}
	return grouped
}

// formatGroup partitions one group's records into ordered subgroups. The
// site-support group partitions by customer instead of subgroup.
func (a *Aggregator) formatGroup(group string, items []TaskRecord) GroupedReport {
	subKey := func(r TaskRecord) string { return r.SubGroup }
	if group == groupSiteSupport {
		subKey = func(r TaskRecord) string { return r.Customer }
	}

	bySub := make(map[string][]TaskRecord)
	var subNames []string
	for _, r := range items {
		key := subKey(r)
		if _, ok := bySub[key]; !ok {
			subNames = append(subNames, key)
		}
		bySub[key] = append(bySub[key], r)
	}

	sort.SliceStable(subNames, func(i, j int) bool {
		ri, rj := subGroupRank(subNames[i]), subGroupRank(subNames[j])
		if ri != rj {
			return ri < rj
		}
		return subNames[i] < subNames[j]
	})

	subGroups := make([]SubGroupItems, 0, len(subNames))
	for _, sub := range subNames {
		sorted := append([]TaskRecord(nil), bySub[sub]...)
		a.sortItems(sorted)
		subGroups = append(subGroups, SubGroupItems{SubGroup: sub, Items: sorted})
	}
	return GroupedReport{Group: group, SubGroups: subGroups}
}

// sortItems orders a subgroup's records by progress rate descending, then
// member priority ascending, then person name.
func (a *Aggregator) sortItems(items []TaskRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ProgressRate != items[j].ProgressRate {
			return items[i].ProgressRate > items[j].ProgressRate
		}
		return a.members.ComparePersons(items[i].Person, items[j].Person) < 0
	})
}

// incompleteGroup wraps records missing required fields into the synthetic
// "데이터 부족" group, defaulting the holes so they still render.
func incompleteGroup(records []TaskRecord) GroupedReport {
	items := make([]TaskRecord, 0, len(records))
	for _, r := range records {
		r.Title = orDash(r.Title)
		r.Customer = orDash(r.Customer)
		r.Group = orDash(r.Group)
		r.SubGroup = orDash(r.SubGroup)
		r.Person = orDash(r.Person)
		items = append(items, r)
	}
	return GroupedReport{
		Group:     groupIncomplete,
		SubGroups: []SubGroupItems{{SubGroup: "-", Items: items}},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// EffortByPerson groups records by person and sums effort, ordered by member
// priority then name. Each person's records are sorted by group, then by
// progress descending. With skipZero set, zero-effort records are dropped
// before aggregation.
func (a *Aggregator) EffortByPerson(records []TaskRecord, skipZero bool) []PersonSummary {
	if skipZero {
		filtered := make([]TaskRecord, 0, len(records))
		for _, r := range records {
			if r.Effort > 0 {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	byPerson := make(map[string][]TaskRecord)
	var names []string
	for _, r := range records {
		if _, ok := byPerson[r.Person]; !ok {
			names = append(names, r.Person)
		}
		byPerson[r.Person] = append(byPerson[r.Person], r)
	}

	sort.SliceStable(names, func(i, j int) bool {
		return a.members.ComparePersons(names[i], names[j]) < 0
	})

	summaries := make([]PersonSummary, 0, len(names))
	for _, name := range names {
		recs := append([]TaskRecord(nil), byPerson[name]...)
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].Group != recs[j].Group {
				return recs[i].Group < recs[j].Group
			}
			return recs[i].ProgressRate > recs[j].ProgressRate
		})

		s := PersonSummary{Name: name, Records: recs}
		for _, r := range recs {
			s.TotalEffort += r.Effort
			if r.IsComplete() && r.IsToday {
				s.IsComplete = true
			}
		}
		s.Leave = deriveLeaveEntries(recs)
		summaries = append(summaries, s)
	}
	return summaries
}

// EffortByGroup sums effort per group name. Render order (descending total)
// is applied by the formatter.
func (a *Aggregator) EffortByGroup(records []TaskRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.Group] += r.Effort
	}
	return totals
}

// deriveLeaveEntries extracts leave days from 연차/반차 records.
func deriveLeaveEntries(records []TaskRecord) []LeaveEntry {
	var leave []LeaveEntry
	for _, r := range records {
		if r.SubGroup != subGroupFullLeave && r.SubGroup != subGroupHalfLeave {
			continue
		}
		if r.Date.Start == "" {
			continue
		}
		leave = append(leave, LeaveEntry{
			Date:      r.Date.Start,
			DayOfWeek: dayOfWeekLabel(r.Date.Start),
			Kind:      r.SubGroup,
		})
	}
	return leave
}
