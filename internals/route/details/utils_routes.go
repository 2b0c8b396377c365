package details

import (
	"github.com/gofiber/fiber/v2"

	chatbotRoute "tvdigital_backend/internals/features/chatbot/route"
	chatbotService "tvdigital_backend/internals/features/chatbot/service"
	newsRoute "tvdigital_backend/internals/features/news/route"
	newsService "tvdigital_backend/internals/features/news/service"
)

// UtilsRoutes: berita + chatbot, keduanya publik
func UtilsRoutes(api fiber.Router, news *newsService.NewsService, chatbot *chatbotService.Client) {
	newsRoute.NewsRoutes(api, news)
	chatbotRoute.ChatbotRoutes(api, chatbot)
}
