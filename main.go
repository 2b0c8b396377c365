package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // Asia/Jakarta tersedia walau image tanpa zoneinfo

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"tvdigital_backend/internals/configs"
	database "tvdigital_backend/internals/databases"
	chatbotService "tvdigital_backend/internals/features/chatbot/service"
	"tvdigital_backend/internals/features/mailer"
	newsService "tvdigital_backend/internals/features/news/service"
	siaranService "tvdigital_backend/internals/features/siaran/service"
	authService "tvdigital_backend/internals/features/users/auth/service"
	helper "tvdigital_backend/internals/helpers"
	middlewares "tvdigital_backend/internals/middlewares"
	"tvdigital_backend/internals/middlewares/logger"
	routes "tvdigital_backend/internals/route"
	"tvdigital_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	// 🛟 panic → 500, harus paling luar
	app.Use(middlewares.RecoveryMiddleware())

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout per request (selaras dengan statement_timeout di DB)
	app.Use(middlewares.RequestContext(5 * time.Second))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware())

	// 🔌 Store: satu handle untuk seluruh proses
	s := database.OpenStore()
	seeds.RunAllSeeds(s)

	// ✉️ Mailer
	var mail mailer.Sender = mailer.LogSender{}
	if configs.SMTPHost != "" {
		mail = mailer.NewSMTPSender(configs.SMTPHost, configs.SMTPPort, configs.SMTPUser, configs.SMTPPassword, configs.SMTPFrom)
	}

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		Store:   s,
		Siaran:  siaranService.NewSiaranService(s),
		Auth:    authService.NewAuthService(s, mail),
		News:    newsService.NewNewsServiceFromEnv(),
		Chatbot: chatbotService.NewClientFromEnv(),
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
}
