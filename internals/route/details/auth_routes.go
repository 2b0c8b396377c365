package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "tvdigital_backend/internals/features/users/auth/route"
	authService "tvdigital_backend/internals/features/users/auth/service"
)

func AuthRoutes(api fiber.Router, svc *authService.AuthService, requireLogin fiber.Handler) {

	authRoute.AuthRoutes(api, svc, requireLogin)

}
