package route

import (
	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/siaran/controller"
	"tvdigital_backend/internals/features/siaran/service"
)

// SiaranPublicRoutes: semua query, tanpa login. optionalLogin hanya mengisi
// can_edit di pohon provinsi.
func SiaranPublicRoutes(api fiber.Router, svc *service.SiaranService, optionalLogin fiber.Handler) {
	ctl := controller.NewSiaranController(svc)

	g := api.Group("/siaran")
	g.Get("/provinsi", ctl.ListProvinces)
	g.Get("/stats", ctl.Stats)
	g.Get("/provinsi/:provinsi", optionalLogin, ctl.GetProvinceTree)
	g.Get("/provinsi/:provinsi/wilayah", ctl.ListRegions)
	g.Get("/provinsi/:provinsi/wilayah/:wilayah/mux", ctl.ListMultiplexes)
	g.Get("/provinsi/:provinsi/wilayah/:wilayah/mux/:mux", ctl.GetRecord)
}

// SiaranUserRoutes: tambah/edit/hapus, wajib login.
func SiaranUserRoutes(api fiber.Router, svc *service.SiaranService, requireLogin fiber.Handler) {
	ctl := controller.NewSiaranController(svc)

	// login dipasang per route, query di prefix yang sama tetap publik
	g := api.Group("/siaran")
	g.Post("/", requireLogin, ctl.Create)
	g.Put("/provinsi/:provinsi/wilayah/:wilayah/mux/:mux", requireLogin, ctl.Update)
	g.Delete("/provinsi/:provinsi/wilayah/:wilayah/mux/:mux", requireLogin, ctl.Delete)
}
