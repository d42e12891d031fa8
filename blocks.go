package main

import (
	"fmt"
	"sort"
	"strings"
)

// Block is one workspace block request payload.
type Block = map[string]any

func richText(content string) []map[string]any {
	return []map[string]any{
		{"type": "text", "text": map[string]any{"content": content}},
	}
}

func richTextWithLink(content, url string) map[string]any {
	text := map[string]any{"content": content}
	if url != "" {
		text["link"] = map[string]any{"url": url}
	}
	return map[string]any{"type": "text", "text": text}
}

func paragraphBlock(text string) Block {
	return Block{
		"object":    "block",
		"type":      "paragraph",
		"paragraph": map[string]any{"rich_text": richText(text)},
	}
}

func heading1Block(text string) Block {
	return Block{
		"object":    "block",
		"type":      "heading_1",
		"heading_1": map[string]any{"rich_text": richText(text)},
	}
}

func heading2Block(text, color string) Block {
	rt := richText(text)
	if color != "" {
		rt[0]["annotations"] = map[string]any{"color": color}
	}
	return Block{
		"object":    "block",
		"type":      "heading_2",
		"heading_2": map[string]any{"rich_text": rt},
	}
}

func heading3Block(text string) Block {
	return Block{
		"object":    "block",
		"type":      "heading_3",
		"heading_3": map[string]any{"rich_text": richText(text)},
	}
}

func bulletedItemBlock(text string) Block {
	return Block{
		"object":             "block",
		"type":               "bulleted_list_item",
		"bulleted_list_item": map[string]any{"rich_text": richText(text)},
	}
}

func dividerBlock() Block {
	return Block{
		"object":  "block",
		"type":    "divider",
		"divider": map[string]any{},
	}
}

// codeBlocks wraps text in code blocks, chunked to the block text limit.
func codeBlocks(text string) []Block {
	chunks := SplitTextIntoChunks(text, maxBlockTextLength)
	blocks := make([]Block, 0, len(chunks))
	for _, chunk := range chunks {
		blocks = append(blocks, Block{
			"object": "block",
			"type":   "code",
			"code": map[string]any{
				"rich_text": richText(chunk),
				"language":  "plain text",
			},
		})
	}
	return blocks
}

// TableCell is one table cell, optionally hyperlinked.
type TableCell struct {
	Text string
	Link string
}

func tableRowBlock(cells []TableCell) Block {
	row := make([][]map[string]any, 0, len(cells))
	for _, c := range cells {
		row = append(row, []map[string]any{richTextWithLink(c.Text, c.Link)})
	}
	return Block{
		"object":    "block",
		"type":      "table_row",
		"table_row": map[string]any{"cells": row},
	}
}

func tableBlock(rows [][]TableCell, hasColumnHeader bool) Block {
	if len(rows) == 0 {
		return dividerBlock()
	}
	children := make([]Block, 0, len(rows))
	for _, row := range rows {
		children = append(children, tableRowBlock(row))
	}
	return Block{
		"object": "block",
		"type":   "table",
		"table": map[string]any{
			"table_width":       len(rows[0]),
			"has_column_header": hasColumnHeader,
			"has_row_header":    false,
			"children":          children,
		},
	}
}

// --- Page-level assembly ---

var reportTags = map[ReportType]string{
	ReportDaily:   "일간",
	ReportWeekly:  "주간",
	ReportMonthly: "월간",
}

var reportIcons = map[ReportType]string{
	ReportDaily:   "📝",
	ReportWeekly:  "🔶",
	ReportMonthly: "📊",
}

// pageProperties builds the report page's title, date and tag properties.
func pageProperties(title, date string, reportType ReportType) map[string]any {
	props := map[string]any{
		"title": map[string]any{
			"title": []map[string]any{
				{"text": map[string]any{"content": title}},
			},
		},
		"Date": map[string]any{
			"date": map[string]any{"start": date},
		},
	}
	if tag, ok := reportTags[reportType]; ok {
		props["Tags"] = map[string]any{
			"select": map[string]any{"name": tag},
		}
	}
	return props
}

func pageIcon(reportType ReportType) map[string]any {
	emoji, ok := reportIcons[reportType]
	if !ok {
		return nil
	}
	return map[string]any{"type": "emoji", "emoji": emoji}
}

var effortHeaders = map[ReportType]string{
	ReportDaily:   "일일 공수 현황",
	ReportWeekly:  "주간 공수 현황",
	ReportMonthly: "월간 공수 현황",
}

// buildPageBlocks assembles the full block list for one report payload:
// effort header, effort summaries, tier-specific content, and the per-person
// detail tables.
func buildPageBlocks(p *ReportPayload, teamName string) []Block {
	blocks := []Block{
		heading2Block(effortHeaders[p.Type], ""),
		paragraphBlock(p.EffortText),
	}
	if p.EffortByGroupText != "" {
		blocks = append(blocks, paragraphBlock(p.EffortByGroupText))
	}

	switch p.Type {
	case ReportDaily:
		blocks = append(blocks, codeBlocks(p.Text)...)
	case ReportWeekly:
		title := fmt.Sprintf("%s %s 주간업무 보고", p.PeriodLabel, teamName)
		blocks = append(blocks, sectionBlocks(p.Sections, title, true, false)...)
	case ReportMonthly:
		title := fmt.Sprintf("%s %s 월간업무 보고", p.PeriodLabel, teamName)
		blocks = append(blocks, sectionBlocks(p.Sections, title, false, true)...)
	}

	blocks = append(blocks, personDetailBlocks(p.ByPerson)...)
	return blocks
}

// sectionBlocks renders structured sections as heading/bullet blocks.
// Monthly reports always include progress and draw a divider before the
// completed section.
func sectionBlocks(sections []ReportSection, title string, weekly, monthly bool) []Block {
	blocks := []Block{heading1Block(title)}

	for _, section := range sections {
		heading := sectionTitle(section.Type, weekly)
		if monthly {
			if section.Type == SectionCompleted {
				heading = "완료된 업무"
				blocks = append(blocks, dividerBlock())
			} else {
				heading = "진행 중인 업무"
			}
		}
		blocks = append(blocks, heading2Block(heading, "yellow_background"))

		for i, group := range section.Groups {
			blocks = append(blocks, heading3Block(fmt.Sprintf("%d. %s", i+1, group.Group)))
			for _, sub := range group.SubGroups {
				blocks = append(blocks, paragraphBlock(fmt.Sprintf("[%s]", sub.SubGroup)))
				for _, item := range sub.Items {
					includeProgress := monthly || section.Type == SectionInProgress
					line := formatItemText(item, includeProgress)
					blocks = append(blocks, bulletedItemBlock(strings.TrimPrefix(line, "- ")))
				}
			}
		}
	}
	return blocks
}

// personDetailBlocks renders one heading plus a task table per person.
// Zero-effort rows are dropped and meeting tasks sink to the bottom of each
// table.
func personDetailBlocks(byPerson []PersonSummary) []Block {
	if len(byPerson) == 0 {
		return nil
	}
	blocks := []Block{heading2Block("개인별 공수 및 진행 상황", "")}

	for _, person := range byPerson {
		heading := fmt.Sprintf("%s - total: %s%s, %d건",
			person.Name, formatNumber(person.TotalEffort), effortUnitDay, len(person.Records))
		blocks = append(blocks, heading3Block(heading))

		var rows []TaskRecord
		for _, r := range person.Records {
			if r.Effort > 0 {
				rows = append(rows, r)
			}
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Group != groupMeeting && rows[j].Group == groupMeeting
		})
		if len(rows) == 0 {
			continue
		}

		table := [][]TableCell{{
			{Text: "번호"}, {Text: "PMS 관리 번호"}, {Text: "타이틀"},
			{Text: "그룹"}, {Text: "진행도"}, {Text: "공수(m/d)"},
		}}
		for i, r := range rows {
			ticket := TableCell{Text: ticketLabel(r.TicketID)}
			if ticket.Text != "" {
				ticket.Link = r.TicketLink
			}
			table = append(table, []TableCell{
				{Text: fmt.Sprintf("%d", i+1)},
				ticket,
				{Text: cleanTitle(r.Title)},
				{Text: r.Group},
				{Text: formatNumber(r.ProgressRate) + "%"},
				{Text: formatNumber(r.Effort)},
			})
		}
		blocks = append(blocks, tableBlock(table, true))
	}
	return blocks
}

func ticketLabel(id int64) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("#%d", id)
}

// cleanTitle strips the "#-" placeholder prefix some titles carry.
func cleanTitle(title string) string {
	if strings.HasPrefix(title, "#-") {
		return strings.TrimSpace(title[2:])
	}
	return title
}
