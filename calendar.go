package main

import (
	"fmt"
	"time"
)

const civilDateLayout = "2006-01-02"

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// fixedHolidays are the solar-calendar Korean public holidays (MM-DD).
// Lunar holidays move every year and are supplied via extra_holidays config.
var fixedHolidays = map[string]bool{
	"01-01": true, // 신정
	"03-01": true, // 삼일절
	"05-05": true, // 어린이날
	"06-06": true, // 현충일
	"08-15": true, // 광복절
	"10-03": true, // 개천절
	"10-09": true, // 한글날
	"12-25": true, // 성탄절
}

// Calendar answers civil-date questions in a single fixed timezone. Every
// "today"-relative decision in the pipeline goes through it so the report
// date can never drift across timezones.
type Calendar struct {
	loc   *time.Location
	extra map[string]bool // YYYY-MM-DD
}

func NewCalendar(loc *time.Location, extraHolidays []string) *Calendar {
	extra := make(map[string]bool, len(extraHolidays))
	for _, d := range extraHolidays {
		extra[d] = true
	}
	return &Calendar{loc: loc, extra: extra}
}

func (c *Calendar) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current date in the calendar's timezone as YYYY-MM-DD.
func (c *Calendar) Today() string {
	return c.Now().Format(civilDateLayout)
}

func (c *Calendar) parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(civilDateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}

// NextDay returns the day after date, or the empty string for unparseable input.
func (c *Calendar) NextDay(date string) string {
	t, err := c.parse(date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(civilDateLayout)
}

// WeekOfMonth returns the 1-based week-of-month label, e.g. "4월 2주차".
// Weeks are Sunday-aligned rows of the month grid: the week number is
// ceil((dayOfMonth + weekdayOfFirstDay) / 7).
func (c *Calendar) WeekOfMonth(date string) string {
	t, err := c.parse(date)
	if err != nil {
		return ""
	}
	firstWeekday := int(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc).Weekday())
	week := (t.Day() + firstWeekday + 6) / 7
	return fmt.Sprintf("%d월 %d주차", int(t.Month()), week)
}

// MonthRange returns the first and last day of date's month.
func (c *Calendar) MonthRange(date string) (firstDay, lastDay string) {
	t, err := c.parse(date)
	if err != nil {
		return "", ""
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
	last := first.AddDate(0, 1, -1)
	return first.Format(civilDateLayout), last.Format(civilDateLayout)
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func (c *Calendar) isPublicHoliday(t time.Time) bool {
	if fixedHolidays[t.Format("01-02")] {
		return true
	}
	return c.extra[t.Format(civilDateLayout)]
}

// IsHoliday reports whether date is a weekend or a public holiday.
func (c *Calendar) IsHoliday(date string) bool {
	t, err := c.parse(date)
	if err != nil {
		return false
	}
	return isWeekend(t) || c.isPublicHoliday(t)
}

// isBusinessDay reports whether t is a weekday that is not a public holiday.
func (c *Calendar) isBusinessDay(t time.Time) bool {
	return !isWeekend(t) && !c.isPublicHoliday(t)
}

// nextBusinessDay steps forward from t to the next business day, skipping
// weekends and holidays.
func (c *Calendar) nextBusinessDay(t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !c.isBusinessDay(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// IsLastBusinessDayOfWeek reports whether date is a business day whose next
// business day falls in a later ISO week.
func (c *Calendar) IsLastBusinessDayOfWeek(date string) bool {
	t, err := c.parse(date)
	if err != nil || !c.isBusinessDay(t) {
		return false
	}
	y1, w1 := t.ISOWeek()
	y2, w2 := c.nextBusinessDay(t).ISOWeek()
	return y1 != y2 || w1 != w2
}

// IsLastBusinessDayOfMonth reports whether date is a business day whose next
// business day falls in a later month.
func (c *Calendar) IsLastBusinessDayOfMonth(date string) bool {
	t, err := c.parse(date)
	if err != nil || !c.isBusinessDay(t) {
		return false
	}
	next := c.nextBusinessDay(t)
	return next.Month() != t.Month() || next.Year() != t.Year()
}

// dayOfWeekLabel returns the Korean single-character weekday for a civil date.
// Weekday of a civil date is timezone-independent, so plain Parse is fine here.
func dayOfWeekLabel(date string) string {
	t, err := time.Parse(civilDateLayout, date)
	if err != nil {
		return ""
	}
	return koreanWeekdays[int(t.Weekday())]
}
