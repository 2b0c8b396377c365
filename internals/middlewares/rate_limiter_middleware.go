package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "tvdigital_backend/internals/helpers"
)

func newIPLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return newIPLimiter(100, time.Minute, "Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return newIPLimiter(5, time.Minute, "Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}

// Rate limiter untuk register + kirim ulang OTP
func RegisterRateLimiter() fiber.Handler {
	return newIPLimiter(3, 5*time.Minute, "Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.")
}

// Rate limiter untuk forgot-password
func ForgotPasswordRateLimiter() fiber.Handler {
	return newIPLimiter(2, 10*time.Minute, "Terlalu banyak permintaan reset password. Silakan coba lagi dalam 10 menit.")
}

// Chatbot memanggil API berbayar, dibatasi per IP.
func ChatbotRateLimiter() fiber.Handler {
	return newIPLimiter(10, time.Minute, "Chatbot sedang sibuk melayani kamu, tunggu sebentar ya.")
}
