// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/databases/store"
	chatbotService "tvdigital_backend/internals/features/chatbot/service"
	newsService "tvdigital_backend/internals/features/news/service"
	siaranService "tvdigital_backend/internals/features/siaran/service"
	authService "tvdigital_backend/internals/features/users/auth/service"
	rateLimiter "tvdigital_backend/internals/middlewares"
	authMiddleware "tvdigital_backend/internals/middlewares/auth"
	routeDetails "tvdigital_backend/internals/route/details"
)

var startTime time.Time

// Deps dibuat sekali di main dan dibagikan ke semua route.
type Deps struct {
	Store   store.Store
	Siaran  *siaranService.SiaranService
	Auth    *authService.AuthService
	News    *newsService.NewsService
	Chatbot *chatbotService.Client
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, d.Store)

	api := app.Group("/api", rateLimiter.GlobalRateLimiter())
	requireLogin := authMiddleware.RequireLogin(d.Auth)
	optionalLogin := authMiddleware.OptionalLogin(d.Auth)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(api, d.Auth, requireLogin)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(api, d.Auth, requireLogin)

	log.Println("[INFO] Mounting Siaran routes...")
	routeDetails.SiaranRoutes(api, d.Siaran, requireLogin, optionalLogin)

	log.Println("[INFO] Mounting Utils routes...")
	routeDetails.UtilsRoutes(api, d.News, d.Chatbot)
}
