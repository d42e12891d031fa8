package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	notionAPIBase    = "https://api.notion.com/v1"
	notionAPIVersion = "2022-06-28"
	notionPageSize   = 100
	// Notion rejects block children requests with more than 100 blocks.
	notionBlockLimit = 100
)

// WorkspaceStore is the workspace database surface the pipeline consumes:
// paginated record queries plus report-page creation.
type WorkspaceStore interface {
	QueryAll(filter, sorts any) ([]gjson.Result, error)
	CreatePage(properties map[string]any, children []Block, icon map[string]any) (string, error)
	AppendBlocks(pageID string, blocks []Block) error
}

// NotionClient talks to the Notion REST API. QueryAll reads from the source
// task database; CreatePage/AppendBlocks write to the report database.
type NotionClient struct {
	token            string
	databaseID       string
	reportDatabaseID string
	baseURL          string
	client           *http.Client
}

func NewNotionClient(cfg Config) *NotionClient {
	return &NotionClient{
		token:            cfg.NotionToken,
		databaseID:       cfg.NotionDatabaseID,
		reportDatabaseID: cfg.NotionReportDatabaseID,
		baseURL:          notionAPIBase,
		client:           externalHTTPClient,
	}
}

func (c *NotionClient) do(method, path string, payload any) (gjson.Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionAPIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("executing request: %w", err)
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != 200 {
		return gjson.Result{}, fmt.Errorf("Notion API returned %d: %s", resp.StatusCode, string(data))
	}

	return gjson.ParseBytes(data), nil
}

func (c *NotionClient) queryDatabase(filter, sorts any, startCursor string) (gjson.Result, error) {
	body := map[string]any{"page_size": notionPageSize}
	if filter != nil {
		body["filter"] = filter
	}
	if sorts != nil {
		body["sorts"] = sorts
	}
	if startCursor != "" {
		body["start_cursor"] = startCursor
	}
	return c.do("POST", "/databases/"+c.databaseID+"/query", body)
}

// QueryAll pages through the source database until the cursor is exhausted.
func (c *NotionClient) QueryAll(filter, sorts any) ([]gjson.Result, error) {
	var all []gjson.Result
	cursor := ""
	for {
		resp, err := c.queryDatabase(filter, sorts, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Get("results").Array()...)
		if !resp.Get("has_more").Bool() {
			return all, nil
		}
		cursor = resp.Get("next_cursor").String()
	}
}

// CreatePage creates a page in the report database and returns its id. Only
// the first 100 children can ride along on creation; the remainder is
// appended afterwards.
func (c *NotionClient) CreatePage(properties map[string]any, children []Block, icon map[string]any) (string, error) {
	initial := children
	var remaining []Block
	if len(children) > notionBlockLimit {
		initial = children[:notionBlockLimit]
		remaining = children[notionBlockLimit:]
	}

	body := map[string]any{
		"parent":     map[string]any{"database_id": c.reportDatabaseID},
		"properties": properties,
		"children":   initial,
	}
	if icon != nil {
		body["icon"] = icon
	}

	resp, err := c.do("POST", "/pages", body)
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	pageID := resp.Get("id").String()

	if len(remaining) > 0 {
		if err := c.AppendBlocks(pageID, remaining); err != nil {
			return pageID, err
		}
	}
	return pageID, nil
}

// AppendBlocks appends blocks to a page in chunks of at most 100.
func (c *NotionClient) AppendBlocks(pageID string, blocks []Block) error {
	for i := 0; i < len(blocks); i += notionBlockLimit {
		end := i + notionBlockLimit
		if end > len(blocks) {
			end = len(blocks)
		}
		body := map[string]any{"children": blocks[i:end]}
		if _, err := c.do("PATCH", "/blocks/"+pageID+"/children", body); err != nil {
			return fmt.Errorf("appending blocks: %w", err)
		}
	}
	return nil
}

// --- Canned record queries ---

var createdTimeDescSorts = []map[string]any{
	{"timestamp": "created_time", "direction": "descending"},
}

func personNotEmptyFilter() map[string]any {
	return map[string]any{
		"property": "Person",
		"people":   map[string]any{"is_not_empty": true},
	}
}

func formulaCheckboxFilter(property string) map[string]any {
	return map[string]any{
		"property": property,
		"formula": map[string]any{
			"checkbox": map[string]any{"equals": true},
		},
	}
}

// dailyRecordFilter matches records flagged for today's progress or
// tomorrow's plan with an assignee set.
func dailyRecordFilter() map[string]any {
	return map[string]any{
		"and": []map[string]any{
			{
				"or": []map[string]any{
					formulaCheckboxFilter("isToday"),
					formulaCheckboxFilter("isTomorrow"),
				},
			},
			personNotEmptyFilter(),
		},
	}
}

// weeklyRecordFilter matches this week's assigned records.
func weeklyRecordFilter() map[string]any {
	return map[string]any{
		"and": []map[string]any{
			personNotEmptyFilter(),
			{
				"property": "Date",
				"date":     map[string]any{"this_week": map[string]any{}},
			},
		},
	}
}

// monthlyRecordFilter matches assigned records dated within [firstDay, lastDay].
func monthlyRecordFilter(firstDay, lastDay string) map[string]any {
	return map[string]any{
		"and": []map[string]any{
			personNotEmptyFilter(),
			{
				"property": "Date",
				"date":     map[string]any{"on_or_after": firstDay},
			},
			{
				"property": "Date",
				"date":     map[string]any{"on_or_before": lastDay},
			},
		},
	}
}

// FetchDailyRecords returns the raw pages for the daily report window.
func FetchDailyRecords(store WorkspaceStore) ([]gjson.Result, error) {
	return store.QueryAll(dailyRecordFilter(), createdTimeDescSorts)
}

// FetchWeeklyRecords returns the raw pages for the current week.
func FetchWeeklyRecords(store WorkspaceStore) ([]gjson.Result, error) {
	return store.QueryAll(weeklyRecordFilter(), createdTimeDescSorts)
}

// FetchMonthlyRecords returns the raw pages dated within the given month range.
func FetchMonthlyRecords(store WorkspaceStore, firstDay, lastDay string) ([]gjson.Result, error) {
	return store.QueryAll(monthlyRecordFilter(firstDay, lastDay), createdTimeDescSorts)
}
