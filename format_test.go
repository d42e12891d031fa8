package main

import (
	"strings"
	"testing"
)

func TestReportTitles(t *testing.T) {
	if got := DailyReportTitle("큐브 파트", "2025-04-25"); got != "큐브 파트 일일업무 보고 (25.04.25)" {
		t.Fatalf("DailyReportTitle = %q", got)
	}
	if got := WeeklyReportTitle("큐브 파트", "4월 4주차"); got != "큐브 파트 주간업무 보고 (4월 4주차)" {
		t.Fatalf("WeeklyReportTitle = %q", got)
	}
	if got := MonthlyReportTitle("큐브 파트", "2025년 4월"); got != "큐브 파트 월간업무 보고 (2025년 4월)" {
		t.Fatalf("MonthlyReportTitle = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{0.5, "0.5"},
		{1.25, "1.25"},
		{100, "100"},
	}
	for _, tc := range tests {
		if got := formatNumber(tc.in); got != tc.want {
			t.Fatalf("formatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatItemText(t *testing.T) {
	r := TaskRecord{Title: "연동 개선", Customer: "A사", Person: "김철수", ProgressRate: 50}
	if got := formatItemText(r, true); got != "- [A사] 연동 개선(김철수, 50%)" {
		t.Fatalf("formatItemText = %q", got)
	}
	if got := formatItemText(r, false); got != "- [A사] 연동 개선(김철수)" {
		t.Fatalf("formatItemText without progress = %q", got)
	}

	r.Customer = "-"
	if got := formatItemText(r, true); got != "- 연동 개선(김철수, 50%)" {
		t.Fatalf("formatItemText with dash customer = %q", got)
	}
}

func TestRenderSections(t *testing.T) {
	sections := []ReportSection{
		{
			Type: SectionInProgress,
			Groups: []GroupedReport{{
				Group: "개발",
				SubGroups: []SubGroupItems{{
					SubGroup: "구현",
					Items: []TaskRecord{
						{Title: "작업 A", Person: "김철수", ProgressRate: 50},
					},
				}},
			}},
		},
		{
			Type: SectionPlanned,
			Groups: []GroupedReport{{
				Group: "개발",
				SubGroups: []SubGroupItems{{
					SubGroup: "분석",
					Items: []TaskRecord{
						{Title: "작업 B", Person: "이영희", ProgressRate: 0},
					},
				}},
			}},
		},
	}

	text := RenderSections(sections, "큐브 파트 일일업무 보고 (25.04.25)")

	if !strings.HasPrefix(text, "큐브 파트 일일업무 보고 (25.04.25)\n\n") {
		t.Fatalf("missing title header: %q", text)
	}
	if !strings.Contains(text, "업무 진행 사항\n1. 개발\n[구현]\n- 작업 A(김철수, 50%)\n") {
		t.Fatalf("in-progress section malformed: %q", text)
	}
	// Planned items never show progress.
	if !strings.Contains(text, "업무 계획 사항\n1. 개발\n[분석]\n- 작업 B(이영희)\n") {
		t.Fatalf("planned section malformed: %q", text)
	}

	// Rendering is a pure function of its input.
	if again := RenderSections(sections, "큐브 파트 일일업무 보고 (25.04.25)"); again != text {
		t.Fatal("repeated render produced different output")
	}
}

func TestSectionTitleWeekly(t *testing.T) {
	if got := sectionTitle(SectionInProgress, true); got != "금주 진행 사항" {
		t.Fatalf("weekly in-progress title = %q", got)
	}
	if got := sectionTitle(SectionPlanned, true); got != "차주 계획 사항" {
		t.Fatalf("weekly planned title = %q", got)
	}
}

func TestRenderEffortByPerson(t *testing.T) {
	summaries := []PersonSummary{
		{Name: "김철수", TotalEffort: 1.5, IsComplete: true},
		{Name: "이영희", TotalEffort: 1, Leave: []LeaveEntry{
			{Date: "2025-04-25", DayOfWeek: "금", Kind: "연차"},
		}},
	}

	daily := RenderEffortByPerson(summaries, effortUnitDay, true, false)
	if !strings.Contains(daily, "- 김철수: 1.5 m/d (작성 완료)\n") {
		t.Fatalf("completion marker missing: %q", daily)
	}
	if strings.Contains(daily, "연차") {
		t.Fatalf("daily render should not carry leave info: %q", daily)
	}

	weekly := RenderEffortByPerson(summaries, effortUnitDay, false, true)
	if !strings.Contains(weekly, "- 이영희: 1 m/d (25.04.25(금) 연차)\n") {
		t.Fatalf("leave annotation missing: %q", weekly)
	}
	if strings.Contains(weekly, "작성 완료") {
		t.Fatalf("weekly render should not carry completion marker: %q", weekly)
	}
	if !strings.HasPrefix(weekly, "[인원별 공수]\n") {
		t.Fatalf("missing block header: %q", weekly)
	}
}

func TestRenderEffortByGroup(t *testing.T) {
	text := RenderEffortByGroup(map[string]float64{
		"개발": 2,
		"회의": 0.5,
		"기타": 2,
	}, effortUnitDay)

	want := "[그룹별 공수]\n- 개발: 2 m/d\n- 기타: 2 m/d\n- 회의: 0.5 m/d\n"
	if text != want {
		t.Fatalf("RenderEffortByGroup = %q, want %q", text, want)
	}
}

func TestSplitTextIntoChunksRoundTrip(t *testing.T) {
	// Multibyte text: rune-based chunking must never split a character.
	text := strings.Repeat("가나다라마바사아자차", 50)
	chunks := SplitTextIntoChunks(text, 33)

	for _, chunk := range chunks {
		if len([]rune(chunk)) > 33 {
			t.Fatalf("chunk exceeds limit: %d runes", len([]rune(chunk)))
		}
	}
	if strings.Join(chunks, "") != text {
		t.Fatal("concatenated chunks do not reproduce the input")
	}
}

func TestSplitTextIntoChunksEdgeCases(t *testing.T) {
	if got := SplitTextIntoChunks("", 10); got != nil {
		t.Fatalf("empty input = %v, want nil", got)
	}
	if got := SplitTextIntoChunks("abc", 10); len(got) != 1 || got[0] != "abc" {
		t.Fatalf("short input = %v", got)
	}
	if got := SplitTextIntoChunks("abcd", 2); len(got) != 2 {
		t.Fatalf("exact split = %v", got)
	}
}
