package controller_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tvdigital_backend/internals/databases/store"
	authModel "tvdigital_backend/internals/features/users/auth/model"
	exportRoute "tvdigital_backend/internals/features/users/export/route"
	helperAuth "tvdigital_backend/internals/helpers/auth"
)

type fakeLister struct {
	accounts []authModel.UserAccount
	err      error
}

func (f fakeLister) ListAccounts(context.Context) ([]authModel.UserAccount, error) {
	return f.accounts, f.err
}

func fakeLogin(c *fiber.Ctx) error {
	if u := c.Get("X-Test-User"); u != "" {
		helperAuth.SetActingUser(c, &authModel.ActingUser{Username: u})
		return c.Next()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false})
}

func get(t *testing.T, app *fiber.App, target string, user string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func newApp(l fakeLister) *fiber.App {
	app := fiber.New()
	exportRoute.ExportRoutes(app.Group("/api"), l, fakeLogin)
	return app
}

func TestExportHTTP(t *testing.T) {
	app := newApp(fakeLister{accounts: []authModel.UserAccount{
		{Username: "budi", Name: "Budi", Email: "budi@example.com", PasswordHash: "$2a$10$x", Points: 3},
	}})

	resp, body := get(t, app, "/api/users/export/csv", "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".csv")
	assert.Equal(t, "username,name,email,points\nbudi,Budi,budi@example.com,3\n", body)

	resp, body = get(t, app, "/api/users/export/sql", "admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `VALUES ('budi', 'Budi', 'budi@example.com', 3);`)
	assert.NotContains(t, body, "$2a$")
}

func TestExportHTTP_NeedsLogin(t *testing.T) {
	app := newApp(fakeLister{})
	resp, _ := get(t, app, "/api/users/export/csv", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExportHTTP_StoreDown(t *testing.T) {
	app := newApp(fakeLister{err: store.ErrUnavailable})
	resp, body := get(t, app, "/api/users/export/sql", "admin")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotContains(t, body, "INSERT")
}

func TestExportHTTP_OtherErrorIs500(t *testing.T) {
	app := newApp(fakeLister{err: errors.New("decode users: unexpected token")})
	resp, body := get(t, app, "/api/users/export/csv", "admin")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "unexpected token")
}
