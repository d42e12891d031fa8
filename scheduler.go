package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartReportScheduler runs the report pipeline on the configured cron
// schedule until stop is closed. The schedule is a standard 5-field cron
// expression (minute hour day-of-month month day-of-week), evaluated in
// the configured timezone. Example: "30 17 * * 1-5" (weekdays 17:30).
func StartReportScheduler(cfg Config, svc *ReportService, db *sql.DB, notifier *SlackNotifier, stop <-chan struct{}) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(cfg.CronSchedule)
	if err != nil {
		// LoadConfig validates the expression, so this only fires if the
		// config was built by hand.
		log.Fatalf("Invalid cron schedule '%s': %v", cfg.CronSchedule, err)
	}

	log.Printf("Report scheduler started (cron: %s, tz: %s)", cfg.CronSchedule, cfg.Timezone)

	go func() {
		for {
			now := time.Now().In(cfg.Location)
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next report run at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			select {
			case <-time.After(wait):
			case <-stop:
				log.Println("Report scheduler stopped")
				return
			}

			runScheduledReport(svc, db, notifier)
		}
	}()
}

func runScheduledReport(svc *ReportService, db *sql.DB, notifier *SlackNotifier) {
	date := svc.cal.Today()

	result, err := svc.GenerateAndSaveReports(date)
	if err != nil {
		log.Printf("Report run %s finished with errors: %v", date, err)
	}

	if n, dbErr := InsertRunRecords(db, runRecordsFromResult(result)); dbErr != nil {
		log.Printf("Saving run history failed: %v", dbErr)
	} else if n > 0 {
		log.Printf("Saved %d run history rows", n)
	}

	if notifier != nil {
		if notifyErr := notifier.NotifyRun(result); notifyErr != nil {
			log.Printf("Run notification failed: %v", notifyErr)
		}
	}
}
