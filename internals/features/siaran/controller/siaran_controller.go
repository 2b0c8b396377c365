package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/siaran/dto"
	"tvdigital_backend/internals/features/siaran/service"
	helper "tvdigital_backend/internals/helpers"
	helperAuth "tvdigital_backend/internals/helpers/auth"
)

type SiaranController struct {
	Svc *service.SiaranService
}

func NewSiaranController(svc *service.SiaranService) *SiaranController {
	return &SiaranController{Svc: svc}
}

// GET /api/siaran/provinsi
func (ctl *SiaranController) ListProvinces(c *fiber.Ctx) error {
	list, err := ctl.Svc.ListProvinces(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	return helper.JsonList(c, "ok", list, nil)
}

// GET /api/siaran/stats
func (ctl *SiaranController) Stats(c *fiber.Ctx) error {
	counts, err := ctl.Svc.AggregateCounts(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	return helper.JsonOK(c, "ok", counts)
}

// GET /api/siaran/provinsi/:provinsi
func (ctl *SiaranController) GetProvinceTree(c *fiber.Ctx) error {
	tree, err := ctl.Svc.RecordTree(c.UserContext(), c.Params("provinsi"))
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"wilayah":  tree,
		"can_edit": helperAuth.GetActingUser(c).IsAuthenticated(),
	})
}

// GET /api/siaran/provinsi/:provinsi/wilayah
func (ctl *SiaranController) ListRegions(c *fiber.Ctx) error {
	list, err := ctl.Svc.ListRegions(c.UserContext(), c.Params("provinsi"))
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	return helper.JsonList(c, "ok", list, nil)
}

// GET /api/siaran/provinsi/:provinsi/wilayah/:wilayah/mux
func (ctl *SiaranController) ListMultiplexes(c *fiber.Ctx) error {
	list, err := ctl.Svc.ListMultiplexes(c.UserContext(), c.Params("provinsi"), c.Params("wilayah"))
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	return helper.JsonList(c, "ok", list, nil)
}

// GET /api/siaran/provinsi/:provinsi/wilayah/:wilayah/mux/:mux
// Record yang tidak ada tetap 200 dengan data kosong.
func (ctl *SiaranController) GetRecord(c *fiber.Ctx) error {
	rec, err := ctl.Svc.GetRecord(c.UserContext(), c.Params("provinsi"), c.Params("wilayah"), c.Params("mux"))
	if err != nil {
		return helper.JsonStoreError(c, err)
	}
	msg := "ok"
	if rec.IsEmpty() {
		msg = "Data siaran belum ada"
	}
	return helper.JsonOK(c, msg, rec)
}

// POST /api/siaran
func (ctl *SiaranController) Create(c *fiber.Ctx) error {
	var req dto.CreateSiaranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	rec, err := ctl.Svc.AddRecord(c.UserContext(), helperAuth.GetActingUser(c), req.ToInput())
	if err != nil {
		return ctl.writeError(c, err, true)
	}

	log.Printf("[INFO] siaran ditambah oleh %s: %s / %s / %s",
		rec.LastUpdatedBy, strings.TrimSpace(req.Provinsi), service.NormalizeWilayah(req.Wilayah), strings.TrimSpace(req.Mux))
	return helper.JsonCreated(c, "Data siaran berhasil disimpan",
		dto.NewSiaranResponse(strings.TrimSpace(req.Provinsi), service.NormalizeWilayah(req.Wilayah), strings.TrimSpace(req.Mux), rec))
}

// PUT /api/siaran/provinsi/:provinsi/wilayah/:wilayah/mux/:mux
func (ctl *SiaranController) Update(c *fiber.Ctx) error {
	var req dto.UpdateSiaranRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	in := service.RecordInput{
		Provinsi: c.Params("provinsi"),
		Wilayah:  c.Params("wilayah"),
		Mux:      c.Params("mux"),
		Siaran:   req.Siaran,
	}
	rec, err := ctl.Svc.EditRecord(c.UserContext(), helperAuth.GetActingUser(c), in)
	if err != nil {
		return ctl.writeError(c, err, false)
	}
	return helper.JsonUpdated(c, "Data siaran berhasil diperbarui", rec)
}

// DELETE /api/siaran/provinsi/:provinsi/wilayah/:wilayah/mux/:mux
func (ctl *SiaranController) Delete(c *fiber.Ctx) error {
	err := ctl.Svc.DeleteRecord(c.UserContext(), helperAuth.GetActingUser(c),
		c.Params("provinsi"), c.Params("wilayah"), c.Params("mux"))
	if err != nil {
		return ctl.writeError(c, err, false)
	}
	return helper.JsonDeleted(c, "Data siaran berhasil dihapus", nil)
}

// writeError memetakan error service ke response. withProvinces: sertakan daftar
// provinsi di 422 supaya form tambah bisa ditampilkan ulang.
func (ctl *SiaranController) writeError(c *fiber.Ctx, err error, withProvinces bool) error {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
	case errors.As(err, &ve):
		var data any
		if withProvinces {
			if list, perr := ctl.Svc.ListProvinces(c.UserContext()); perr == nil {
				data = fiber.Map{"provinsi": list}
			}
		}
		return helper.JsonValidationError(c, ve.Message, map[string][]string{ve.Field: {ve.Message}}, data)
	case errors.Is(err, service.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.JsonStoreError(c, err)
	}
}
