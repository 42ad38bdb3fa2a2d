// Command calendar prints the crontab lines and upcoming dates on which the
// notifier will actually post, for setting up the external scheduler.
package main

import (
	"fmt"
	"os"
	"time"

	"invoice_reminder_bot/internal/domain/reminder"
	"invoice_reminder_bot/internal/infra/config"
	"invoice_reminder_bot/internal/infra/logger"
	"invoice_reminder_bot/internal/infra/scheduler"
)

const upcomingRuns = 6

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)

	rules := reminder.DefaultRuleSet()
	cal, err := scheduler.NewCalendar(rules, cfg.CronSpecDaily, cfg.Location)
	if err != nil {
		logger.Log.Fatalf("Could not build reminder calendar: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Daily run: %s (%s)\n", cfg.CronSpecDaily, cfg.Location)
	for _, day := range rules.Days() {
		spec, _ := cal.Crontab(day)
		fmt.Fprintf(os.Stdout, "Day %2d: %s\n", day, spec)
	}

	fmt.Fprintln(os.Stdout, "Upcoming reminders:")
	for _, ft := range cal.Next(time.Now(), upcomingRuns) {
		fmt.Fprintf(os.Stdout, "  %s  day %d\n", ft.At.Format("2006-01-02 15:04 MST"), ft.Day)
	}
}
