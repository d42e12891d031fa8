package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	NotionToken            string `yaml:"notion_token"`
	NotionDatabaseID       string `yaml:"notion_database_id"`
	NotionReportDatabaseID string `yaml:"notion_report_database_id"`

	SlackBotToken   string `yaml:"slack_bot_token"`
	ReportChannelID string `yaml:"report_channel_id"`

	CronSchedule  string   `yaml:"cron_schedule"`
	Timezone      string   `yaml:"timezone"`
	TeamName      string   `yaml:"team_name"`
	MembersPath   string   `yaml:"members_path"`
	ExtraHolidays []string `yaml:"extra_holidays"`

	DBPath string `yaml:"db_path"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.NotionToken, "NOTION_TOKEN")
	envOverride(&cfg.NotionDatabaseID, "NOTION_DATABASE_ID")
	envOverride(&cfg.NotionReportDatabaseID, "NOTION_REPORT_DATABASE_ID")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.ReportChannelID, "REPORT_CHANNEL_ID")
	envOverride(&cfg.CronSchedule, "CRON_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.TeamName, "TEAM_NAME")
	envOverride(&cfg.MembersPath, "MEMBERS_PATH")
	envOverride(&cfg.DBPath, "DB_PATH")

	if dates := os.Getenv("EXTRA_HOLIDAYS"); dates != "" {
		cfg.ExtraHolidays = nil
		for _, d := range strings.Split(dates, ",") {
			d = strings.TrimSpace(d)
			if d != "" {
				cfg.ExtraHolidays = append(cfg.ExtraHolidays, d)
			}
		}
	}

	// Defaults
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "30 17 * * 1-5"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Seoul"
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "큐브 파트"
	}
	if cfg.MembersPath == "" {
		cfg.MembersPath = "./members.yaml"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./cubereport.db"
	}

	// Validate required fields
	required := map[string]string{
		"notion_token":              cfg.NotionToken,
		"notion_database_id":        cfg.NotionDatabaseID,
		"notion_report_database_id": cfg.NotionReportDatabaseID,
	}
	for name, val := range required {
		if val == "" {
			log.Fatalf("Required config '%s' is not set (via config.yaml or env var)", name)
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
	}
	cfg.Location = loc

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(cfg.CronSchedule); err != nil {
		log.Fatalf("invalid cron_schedule '%s': %v", cfg.CronSchedule, err)
	}

	for _, d := range cfg.ExtraHolidays {
		if _, err := time.Parse(civilDateLayout, d); err != nil {
			log.Fatalf("invalid extra_holidays entry '%s': %v", d, err)
		}
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
