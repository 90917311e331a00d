package aionaraController

import (
	"ruha/config"
	"ruha/logger"
	"ruha/middleware"
	"ruha/utils"
	aionaraValidator "ruha/validators/aionara"

	"github.com/gofiber/fiber/v2"
)

// Chat answers a learner's message. Without an api key the reply comes from the
// fallback table. A provider failure never surfaces as an error: the reply is the
// disrupted message and source is "disrupted".
func Chat(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChat").(*aionaraValidator.ChatRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	history := make([]utils.ChatMessage, 0, len(reqData.History))
	for _, turn := range reqData.History {
		history = append(history, utils.ChatMessage{Role: turn.Role, Content: turn.Content})
	}

	client := utils.NewAionaraClient(config.AppConfig)
	reply, source := client.Reply(c.UserContext(), reqData.Message, history)

	userID, _ := middleware.UserID(c)
	logger.Log.Debug("Aionara replied", "user_id", userID, "source", source)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Aionara has spoken.", fiber.Map{
		"reply":  reply,
		"source": source,
	})
}
