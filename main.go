package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := LoadConfig()

	db, err := InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	members, err := LoadMemberDirectory(cfg.MembersPath)
	if err != nil {
		log.Fatalf("Failed to load members: %v", err)
	}

	cal := NewCalendar(cfg.Location, cfg.ExtraHolidays)
	store := NewNotionClient(cfg)
	svc := NewReportService(store, members, cal, cfg.TeamName)
	notifier := NewSlackNotifier(cfg.SlackBotToken, cfg.ReportChannelID)
	if notifier == nil {
		log.Println("Slack notifications disabled (bot token or channel not set)")
	}

	log.Printf("Starting %s report bot...", cfg.TeamName)

	stop := make(chan struct{})
	StartReportScheduler(cfg, svc, db, notifier, stop)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	close(stop)
	log.Println("Shutting down")
}
