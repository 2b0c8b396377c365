package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/users/auth/model"
	exportService "tvdigital_backend/internals/features/users/export/service"
	helper "tvdigital_backend/internals/helpers"
	helperAuth "tvdigital_backend/internals/helpers/auth"
	"tvdigital_backend/internals/helpers/dbtime"
)

// AccountLister dipenuhi oleh service auth.
type AccountLister interface {
	ListAccounts(ctx context.Context) ([]model.UserAccount, error)
}

type ExportController struct {
	Accounts AccountLister
}

func NewExportController(accounts AccountLister) *ExportController {
	return &ExportController{Accounts: accounts}
}

// GET /api/users/export/csv
func (ctl *ExportController) CSV(c *fiber.Ctx) error {
	return ctl.download(c, "csv", "text/csv; charset=utf-8", exportService.WriteCSV)
}

// GET /api/users/export/sql
func (ctl *ExportController) SQL(c *fiber.Ctx) error {
	return ctl.download(c, "sql", "application/sql; charset=utf-8", exportService.WriteSQL)
}

func (ctl *ExportController) download(
	c *fiber.Ctx,
	ext, contentType string,
	write func(io.Writer, []model.UserAccount) error,
) error {
	actor := helperAuth.GetActingUser(c)
	if !actor.IsAuthenticated() {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Silakan login terlebih dahulu")
	}

	accounts, err := ctl.Accounts.ListAccounts(c.UserContext())
	if err != nil {
		return helper.JsonStoreError(c, err)
	}

	// buffer dulu supaya error tulis masih bisa dijawab sebagai JSON
	var buf bytes.Buffer
	if err := write(&buf, accounts); err != nil {
		log.Printf("[ERROR] export %s: %v", ext, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat file export")
	}

	log.Printf("[INFO] export %s %d user oleh %s", ext, len(accounts), actor.Username)
	filename := fmt.Sprintf("users-%s.%s", dbtime.NowInApp().Format("20060102-150405"), ext)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
