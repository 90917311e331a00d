package utils

import (
	"time"

	"ruha/database"
	"ruha/logger"
	"ruha/models"
	"ruha/models/cosmos"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeEventScheduler starts the daily sacred-event reminder job (06:00 server time).
func InitializeEventScheduler() *cron.Cron {
	logger.Log.Info("[EVENT-SCHEDULER] Initializing event reminder scheduler")

	c := cron.New()
	_, err := c.AddFunc("0 6 * * *", func() {
		logger.Log.Info("[EVENT-SCHEDULER] Running daily event reminders")
		sent, err := SendEventReminders(database.Database.Db, time.Now())
		if err != nil {
			logger.Log.Error("[EVENT-SCHEDULER] Reminder run failed", "error", err)
			return
		}
		logger.Log.Info("[EVENT-SCHEDULER] Reminder run finished", "emails", sent)
	})
	if err != nil {
		logger.Log.Error("[EVENT-SCHEDULER] Failed to register job", "error", err)
		return c
	}

	c.Start()
	logger.Log.Info("[EVENT-SCHEDULER] Event scheduler started - runs daily at 06:00")
	return c
}

// SendEventReminders emails the events starting on the day of at to every user with
// reminders enabled, then marks those events so a rerun does not repeat them. It
// returns the number of emails sent.
func SendEventReminders(db *gorm.DB, at time.Time) (int, error) {
	start, end := DayWindow(at)

	var events []cosmos.SacredEvent
	err := db.Where("starts_at BETWEEN ? AND ? AND reminder_sent = ? AND is_deleted = ?", start, end, false, false).
		Order("starts_at asc").
		Find(&events).Error
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	var users []models.User
	if err := db.Where("event_reminders = ? AND is_deleted = ?", true, false).Find(&users).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		if err := SendEventReminderEmail(user.Email, user.Name, events); err != nil {
			logger.Log.Warn("[EVENT-SCHEDULER] Reminder email failed", "user_id", user.ID, "error", err)
			continue
		}
		sent++
	}

	ids := make([]string, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}
	if err := db.Model(&cosmos.SacredEvent{}).Where("id IN ?", ids).Update("reminder_sent", true).Error; err != nil {
		return sent, err
	}

	logger.Log.Info("[EVENT-SCHEDULER] Sent reminders", "events", len(events), "emails", sent)
	return sent, nil
}
