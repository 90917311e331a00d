package utils

import (
	"testing"
	"time"

	"ruha/config"
	"ruha/database"
	"ruha/models"
	"ruha/models/cosmos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEventReminders(t *testing.T) {
	config.AppConfig = config.Default()

	db, err := database.OpenSqlite("file:event_reminders?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	day := time.Date(2027, 6, 21, 6, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&cosmos.SacredEvent{Title: "Summer Solstice", EventType: cosmos.EventSolstice, StartsAt: day.Add(4 * time.Hour)}).Error)
	require.NoError(t, db.Create(&cosmos.SacredEvent{Title: "Full Moon", EventType: cosmos.EventFullMoon, StartsAt: day.AddDate(0, 0, 3)}).Error)

	require.NoError(t, db.Create(&models.User{Name: "Ione", Email: "ione@example.com", Password: "x", EventReminders: true}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Bryn", Email: "bryn@example.com", Password: "x", EventReminders: true}).Error)
	require.NoError(t, db.Create(&models.User{Name: "Quiet", Email: "quiet@example.com", Password: "x"}).Error)

	sent, err := SendEventReminders(db, day)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	var marked int64
	require.NoError(t, db.Model(&cosmos.SacredEvent{}).Where("reminder_sent = ?", true).Count(&marked).Error)
	assert.EqualValues(t, 1, marked)

	sent, err = SendEventReminders(db, day)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestEventReminderBody(t *testing.T) {
	start := time.Date(2027, 6, 21, 4, 0, 0, 0, time.UTC)
	body := EventReminderBody("Ione <3", []cosmos.SacredEvent{{Title: "Summer Solstice", StartsAt: start}})
	assert.Contains(t, body, "Ione &lt;3")
	assert.Contains(t, body, "Summer Solstice")
	assert.Contains(t, body, "Mon, 21 Jun 2027")
}
