package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// maxBlockTextLength is the workspace limit on one rich-text block.
	maxBlockTextLength = 2000

	effortUnitDay  = "m/d"
	effortUnitHour = "m/h"
)

// shortDate converts YYYY-MM-DD to the YY.MM.DD header form.
func shortDate(date string) string {
	if len(date) < 2 {
		return date
	}
	return strings.ReplaceAll(date[2:], "-", ".")
}

// formatNumber renders an effort or progress value without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DailyReportTitle returns e.g. "큐브 파트 일일업무 보고 (25.04.25)".
func DailyReportTitle(teamName, date string) string {
	return fmt.Sprintf("%s 일일업무 보고 (%s)", teamName, shortDate(date))
}

// WeeklyReportTitle returns e.g. "큐브 파트 주간업무 보고 (4월 2주차)".
func WeeklyReportTitle(teamName, weekOfMonth string) string {
	return fmt.Sprintf("%s 주간업무 보고 (%s)", teamName, weekOfMonth)
}

// MonthlyReportTitle returns e.g. "큐브 파트 월간업무 보고 (2025년 4월)".
func MonthlyReportTitle(teamName, monthLabel string) string {
	return fmt.Sprintf("%s 월간업무 보고 (%s)", teamName, monthLabel)
}

// sectionTitle maps a section type to its rendered heading. Weekly reports
// use the week-relative phrasing.
func sectionTitle(t SectionType, weekly bool) string {
	if weekly {
		if t == SectionInProgress {
			return "금주 진행 사항"
		}
		return "차주 계획 사항"
	}
	switch t {
	case SectionInProgress:
		return "업무 진행 사항"
	case SectionPlanned:
		return "업무 계획 사항"
	case SectionCompleted:
		return "완료된 업무"
	default:
		return string(t)
	}
}

// formatItemText renders one record as a bullet line:
// "- [customer] title(person, NN%)". Progress is omitted for planned items.
func formatItemText(r TaskRecord, includeProgress bool) string {
	title := r.Title
	if r.Customer != "" && r.Customer != "-" {
		title = fmt.Sprintf("[%s] %s", r.Customer, r.Title)
	}
	progress := ""
	if includeProgress {
		progress = fmt.Sprintf(", %s%%", formatNumber(r.ProgressRate))
	}
	return fmt.Sprintf("- %s(%s%s)", title, r.Person, progress)
}

// RenderSections assembles the full line-oriented report text: title, then
// per-section heading, numbered group headings, bracketed subgroup headings
// and item bullets. Progress percentages appear only in in-progress and
// completed sections.
func RenderSections(sections []ReportSection, title string) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, section := range sections {
		b.WriteString(sectionTitle(section.Type, false))
		b.WriteString("\n")

		for i, group := range section.Groups {
			fmt.Fprintf(&b, "%d. %s\n", i+1, group.Group)

			for _, sub := range group.SubGroups {
				fmt.Fprintf(&b, "[%s]\n", sub.SubGroup)
				for _, item := range sub.Items {
					includeProgress := section.Type != SectionPlanned
					b.WriteString(formatItemText(item, includeProgress))
					b.WriteString("\n")
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderEffortByPerson renders the per-person effort block. The daily report
// marks people who have filed today's records complete; weekly and monthly
// reports append leave-day annotations instead.
func RenderEffortByPerson(summaries []PersonSummary, unit string, includeCompletion, includeLeave bool) string {
	var b strings.Builder
	b.WriteString("[인원별 공수]\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "- %s: %s %s", s.Name, formatNumber(s.TotalEffort), unit)
		if includeCompletion && s.IsComplete {
			b.WriteString(" (작성 완료)")
		}
		if includeLeave && len(s.Leave) > 0 {
			b.WriteString(" (" + formatLeaveEntries(s.Leave) + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatLeaveEntries renders leave days as "YY.MM.DD(요일) 연차, ...".
func formatLeaveEntries(leave []LeaveEntry) string {
	parts := make([]string, 0, len(leave))
	for _, l := range leave {
		parts = append(parts, fmt.Sprintf("%s(%s) %s", shortDate(l.Date), l.DayOfWeek, l.Kind))
	}
	return strings.Join(parts, ", ")
}

// RenderEffortByGroup renders the per-group effort block, largest first.
func RenderEffortByGroup(totals map[string]float64, unit string) string {
	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(totals))
	for name, value := range totals {
		entries = append(entries, entry{name, value})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].name < entries[j].name
	})

	var b strings.Builder
	b.WriteString("[그룹별 공수]\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %s %s\n", e.name, formatNumber(e.value), unit)
	}
	return b.String()
}

// SplitTextIntoChunks slices text into rune-safe pieces of at most chunkSize
// runes. Concatenating the chunks reproduces the input exactly.
func SplitTextIntoChunks(text string, chunkSize int) []string {
	if chunkSize <= 0 || text == "" {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+chunkSize-1)/chunkSize)
	for i := 0; i < len(runes); i += chunkSize {
		end := i + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}
