package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/models/cosmos"

	"gorm.io/gorm"
)

func main() {
	path := flag.String("file", "SacredEvents.csv", "CSV file with title,description,eventType,startsAt,endsAt,deity columns")
	flag.Parse()

	config.LoadConfig()
	if err := logger.Init(config.AppConfig.LogMode); err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()
	database.ConnectDb()

	file, err := os.Open(*path)
	if err != nil {
		logger.Log.Fatal("Failed to open CSV file", "file", *path, "error", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		logger.Log.Fatal("Failed to read CSV", "error", err)
	}
	if len(records) < 2 {
		logger.Log.Fatal("CSV file is empty or has only headers")
	}

	inserted, updated, skipped := importEvents(database.Database.Db, records)

	logger.Log.Info("Import complete", "inserted", inserted, "updated", updated, "skipped", skipped,
		"total", inserted+updated+skipped)
}

// importEvents upserts every row keyed on (title, startsAt). The first record is the header.
func importEvents(db *gorm.DB, records [][]string) (inserted, updated, skipped int) {
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.TrimSpace(h)] = i
	}

	deities := map[string]string{}
	var rows []cosmos.Deity
	if err := db.Where("is_deleted = ?", false).Find(&rows).Error; err != nil {
		logger.Log.Warn("Could not load deities, events will be imported without one", "error", err)
	}
	for _, d := range rows {
		deities[strings.ToLower(d.Name)] = d.ID
	}

	for i, row := range records[1:] {
		event, err := parseEventRow(row, headerIndex, deities)
		if err != nil {
			logger.Log.Warn("Skipping row", "row", i+2, "error", err)
			skipped++
			continue
		}

		var existing cosmos.SacredEvent
		result := db.Where("title = ? AND starts_at = ?", event.Title, event.StartsAt).First(&existing)
		if result.Error != nil {
			if err := db.Create(&event).Error; err != nil {
				logger.Log.Error("Error inserting event", "title", event.Title, "error", err)
				skipped++
				continue
			}
			inserted++
			continue
		}

		existing.Description = event.Description
		existing.EventType = event.EventType
		existing.EndsAt = event.EndsAt
		existing.DeityID = event.DeityID
		existing.IsDeleted = false
		if err := db.Save(&existing).Error; err != nil {
			logger.Log.Error("Error updating event", "title", event.Title, "error", err)
			skipped++
			continue
		}
		updated++
	}
	return inserted, updated, skipped
}

func parseEventRow(row []string, headerIndex map[string]int, deities map[string]string) (cosmos.SacredEvent, error) {
	event := cosmos.SacredEvent{
		Title:       getField(row, headerIndex, "title"),
		Description: getField(row, headerIndex, "description"),
		EventType:   strings.ToLower(getField(row, headerIndex, "eventType")),
	}
	if event.Title == "" {
		return event, fmt.Errorf("missing title")
	}
	if !validEventType(event.EventType) {
		return event, fmt.Errorf("unknown event type %q", event.EventType)
	}

	startsAt, err := parseTime(getField(row, headerIndex, "startsAt"))
	if err != nil {
		return event, fmt.Errorf("startsAt: %w", err)
	}
	event.StartsAt = startsAt

	if raw := getField(row, headerIndex, "endsAt"); raw != "" {
		endsAt, err := parseTime(raw)
		if err != nil {
			return event, fmt.Errorf("endsAt: %w", err)
		}
		if endsAt.Before(startsAt) {
			return event, fmt.Errorf("endsAt before startsAt")
		}
		event.EndsAt = &endsAt
	}

	if name := getField(row, headerIndex, "deity"); name != "" {
		if id, ok := deities[strings.ToLower(name)]; ok {
			event.DeityID = &id
		}
	}
	return event, nil
}

func validEventType(kind string) bool {
	for _, t := range cosmos.EventTypes {
		if t == kind {
			return true
		}
	}
	return false
}

// parseTime accepts RFC3339 timestamps or plain dates, always in UTC.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
