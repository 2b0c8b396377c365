package route

import (
	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/users/auth/controller"
	"tvdigital_backend/internals/features/users/auth/service"
	rateLimiter "tvdigital_backend/internals/middlewares"
)

// AuthRoutes: base /api/auth
func AuthRoutes(api fiber.Router, svc *service.AuthService, requireLogin fiber.Handler) {
	ctl := controller.NewAuthController(svc)

	auth := api.Group("/auth")

	// 🔓 Public
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
	auth.Post("/register/verify", rateLimiter.LoginRateLimiter(), ctl.VerifyRegistration)
	auth.Post("/register/resend", rateLimiter.RegisterRateLimiter(), ctl.ResendOTP)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	auth.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), ctl.ForgotPassword)
	auth.Post("/forgot-password/reset", rateLimiter.LoginRateLimiter(), ctl.ResetPassword)

	// logout tetap sukses walau token sudah tidak valid
	auth.Post("/logout", ctl.Logout)

	// 🔐 Login
	auth.Get("/me", requireLogin, ctl.Me)
}
