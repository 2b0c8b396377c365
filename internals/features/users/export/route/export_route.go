package route

import (
	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/users/export/controller"
)

// ExportRoutes: base /api/users/export (login wajib)
func ExportRoutes(api fiber.Router, accounts controller.AccountLister, requireLogin fiber.Handler) {
	ctl := controller.NewExportController(accounts)

	g := api.Group("/users/export", requireLogin)
	g.Get("/csv", ctl.CSV)
	g.Get("/sql", ctl.SQL)
}
