package route

import (
	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/chatbot/controller"
	"tvdigital_backend/internals/features/chatbot/service"
	rateLimiter "tvdigital_backend/internals/middlewares"
)

// ChatbotRoutes: base /api/chatbot (publik, dibatasi per IP)
func ChatbotRoutes(api fiber.Router, client *service.Client) {
	ctl := controller.NewChatbotController(client)
	api.Post("/chatbot", rateLimiter.ChatbotRateLimiter(), ctl.Ask)
}
