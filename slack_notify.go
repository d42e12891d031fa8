package main

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SlackNotifier posts a short run summary to the report channel after
// each scheduled run. Optional: nil when Slack is not configured.
type SlackNotifier struct {
	api       *slack.Client
	channelID string
}

func NewSlackNotifier(botToken, channelID string) *SlackNotifier {
	if botToken == "" || channelID == "" {
		return nil
	}
	return &SlackNotifier{
		api:       slack.New(botToken),
		channelID: channelID,
	}
}

func (n *SlackNotifier) NotifyRun(result *RunResult) error {
	_, _, err := n.api.PostMessage(n.channelID, slack.MsgOptionText(formatRunSummary(result), false))
	return err
}

func formatRunSummary(result *RunResult) string {
	if result.Skipped {
		return fmt.Sprintf("%s 보고서 생성 건너뜀 (휴일)", result.Date)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("%s 보고서 생성 결과", result.Date))
	for _, t := range result.Tiers {
		if t.Err != nil {
			lines = append(lines, fmt.Sprintf("• %s: 실패 (%v)", t.Type, t.Err))
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", t.Type, t.Title))
	}
	return strings.Join(lines, "\n")
}
