package route

import (
	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/news/controller"
	"tvdigital_backend/internals/features/news/service"
)

// NewsRoutes: base /api/news (publik)
func NewsRoutes(api fiber.Router, svc *service.NewsService) {
	ctl := controller.NewNewsController(svc)
	api.Get("/news", ctl.List)
}
