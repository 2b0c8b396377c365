package details

import (
	"github.com/gofiber/fiber/v2"

	siaranRoute "tvdigital_backend/internals/features/siaran/route"
	siaranService "tvdigital_backend/internals/features/siaran/service"
)

func SiaranRoutes(api fiber.Router, svc *siaranService.SiaranService, requireLogin, optionalLogin fiber.Handler) {
	// ✅ Query publik
	siaranRoute.SiaranPublicRoutes(api, svc, optionalLogin)

	// 🔐 Tambah / edit / hapus
	siaranRoute.SiaranUserRoutes(api, svc, requireLogin)
}
