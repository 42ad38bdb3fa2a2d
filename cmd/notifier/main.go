package main

import (
	"context"
	"os"

	"invoice_reminder_bot/internal/app"
	"invoice_reminder_bot/internal/domain/notification"
	"invoice_reminder_bot/internal/domain/reminder"
	"invoice_reminder_bot/internal/infra/config"
	"invoice_reminder_bot/internal/infra/logger"
	"invoice_reminder_bot/internal/infra/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)

	client := webhook.NewHTTPClient(cfg.WebhookURL, cfg.WebhookTimeout)
	identity := notification.Identity{
		Channel:  cfg.Channel,
		Username: cfg.Username,
		IconURL:  cfg.IconURL,
	}

	notifier := app.NewNotifier(reminder.DefaultRuleSet(), client, identity, cfg.Location, os.Stdout, logger.Log)
	if err := notifier.Run(context.Background()); err != nil {
		logger.Log.Fatalf("Reminder run failed: %v", err)
	}
}
