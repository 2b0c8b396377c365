package details

import (
	"github.com/gofiber/fiber/v2"

	authService "tvdigital_backend/internals/features/users/auth/service"
	exportRoute "tvdigital_backend/internals/features/users/export/route"
)

// UserRoutes: fitur seputar data user (login wajib)
func UserRoutes(api fiber.Router, svc *authService.AuthService, requireLogin fiber.Handler) {
	exportRoute.ExportRoutes(api, svc, requireLogin)
}
