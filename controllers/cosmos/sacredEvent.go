package cosmosController

import (
	"errors"
	"time"

	"ruha/database"
	"ruha/logger"
	"ruha/middleware"
	"ruha/models/cosmos"
	"ruha/utils"
	cosmosValidator "ruha/validators/cosmos"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func withDisplayDates(events []cosmos.SacredEvent) []cosmos.SacredEvent {
	for i := range events {
		events[i].DisplayDate = utils.FormatEventDate(events[i].StartsAt, events[i].EndsAt)
	}
	return events
}

// GetSacredEvents lists events of a month (?month=YYYY-MM, default the current one) or
// the next N events from today (?upcoming=N).
func GetSacredEvents(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedSacredEventList").(*cosmosValidator.SacredEventListRequest)
	db := database.Database.Db.Where("is_deleted = ?", false)

	if reqData != nil && reqData.Upcoming > 0 {
		today, _ := utils.DayWindow(time.Now())
		db = db.Where("starts_at >= ?", today).Limit(reqData.Upcoming)
	} else {
		month := time.Now().UTC().Format("2006-01")
		if reqData != nil && reqData.Month != "" {
			month = reqData.Month
		}
		start, end, err := utils.MonthWindow(month)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"month": err.Error()})
		}
		db = db.Where("starts_at BETWEEN ? AND ?", start, end)
	}

	var events []cosmos.SacredEvent
	if err := db.Order("starts_at asc").Find(&events).Error; err != nil {
		logger.Log.Error("Failed to fetch sacred events", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sacred events!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sacred events fetched successfully!", withDisplayDates(events))
}

func findSacredEvent(c *fiber.Ctx) (*cosmos.SacredEvent, error) {
	var event cosmos.SacredEvent
	id := c.Locals("id").(string)
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", id, false).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sacred event not found!", nil)
	}
	if err != nil {
		logger.Log.Error("Failed to fetch sacred event", "event_id", id, "error", err)
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sacred event!", nil)
	}
	event.DisplayDate = utils.FormatEventDate(event.StartsAt, event.EndsAt)
	return &event, nil
}

func GetSacredEvent(c *fiber.Ctx) error {
	event, err := findSacredEvent(c)
	if event == nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sacred event fetched successfully!", event)
}

// deityExists reports whether id names an active deity; nil ids are allowed.
func deityExists(id *string) (bool, error) {
	if id == nil || *id == "" {
		return true, nil
	}
	var count int64
	err := database.Database.Db.Model(&cosmos.Deity{}).Where("id = ? AND is_deleted = ?", *id, false).Count(&count).Error
	return count > 0, err
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func AdminCreateSacredEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSacredEvent").(*cosmosValidator.SacredEventRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	found, err := deityExists(reqData.DeityID)
	if err != nil {
		logger.Log.Error("Failed to check deity", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create sacred event!", nil)
	}
	if !found {
		return middleware.ValidationErrorResponse(c, map[string]string{"deityId": "Unknown deity!"})
	}

	event := cosmos.SacredEvent{
		Title:       reqData.Title,
		Description: reqData.Description,
		EventType:   reqData.EventType,
		StartsAt:    reqData.StartsAt.UTC(),
		EndsAt:      utcTime(reqData.EndsAt),
		DeityID:     reqData.DeityID,
	}
	if err := database.Database.Db.Create(&event).Error; err != nil {
		logger.Log.Error("Failed to create sacred event", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create sacred event!", nil)
	}
	event.DisplayDate = utils.FormatEventDate(event.StartsAt, event.EndsAt)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sacred event created successfully!", event)
}

func AdminUpdateSacredEvent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSacredEvent").(*cosmosValidator.SacredEventRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	event, err := findSacredEvent(c)
	if event == nil {
		return err
	}
	found, err := deityExists(reqData.DeityID)
	if err != nil {
		logger.Log.Error("Failed to check deity", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update sacred event!", nil)
	}
	if !found {
		return middleware.ValidationErrorResponse(c, map[string]string{"deityId": "Unknown deity!"})
	}

	event.Title = reqData.Title
	event.Description = reqData.Description
	event.EventType = reqData.EventType
	event.StartsAt = reqData.StartsAt.UTC()
	event.EndsAt = utcTime(reqData.EndsAt)
	event.DeityID = reqData.DeityID
	if err := database.Database.Db.Save(event).Error; err != nil {
		logger.Log.Error("Failed to update sacred event", "event_id", event.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update sacred event!", nil)
	}
	event.DisplayDate = utils.FormatEventDate(event.StartsAt, event.EndsAt)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sacred event updated successfully!", event)
}

func AdminDeleteSacredEvent(c *fiber.Ctx) error {
	event, err := findSacredEvent(c)
	if event == nil {
		return err
	}
	if err := database.Database.Db.Model(&cosmos.SacredEvent{}).Where("id = ?", event.ID).Update("is_deleted", true).Error; err != nil {
		logger.Log.Error("Failed to delete sacred event", "event_id", event.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete sacred event!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sacred event deleted successfully!", nil)
}
