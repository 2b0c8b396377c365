package controller_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	newsRoute "tvdigital_backend/internals/features/news/route"
	"tvdigital_backend/internals/features/news/service"
)

const feed = `<rss version="2.0"><channel><title>Kabar</title>
<item><title>Satu</title><link>https://k.example/1</link><pubDate>Sun, 10 Mar 2024 07:00:00 +0700</pubDate></item>
<item><title>Dua</title><link>https://k.example/2</link><pubDate>Sun, 10 Mar 2024 06:00:00 +0700</pubDate></item>
<item><title>Tiga</title><link>https://k.example/3</link><pubDate>Sun, 10 Mar 2024 05:00:00 +0700</pubDate></item>
</channel></rss>`

type listEnvelope struct {
	Success    bool             `json:"success"`
	ErrorCode  string           `json:"error_code"`
	Data       []map[string]any `json:"data"`
	Pagination map[string]any   `json:"pagination"`
}

func newApp(feeds ...string) *fiber.App {
	app := fiber.New(fiber.Config{JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	newsRoute.NewsRoutes(app.Group("/api"), service.NewNewsService(feeds))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, listEnvelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env listEnvelope
	require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestNewsHTTP_Paging(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()
	app := newApp(srv.URL)

	status, env := get(t, app, "/api/news?per_page=2&page=2")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Tiga", env.Data[0]["title"])
	assert.Equal(t, float64(3), env.Pagination["total"])
	assert.Equal(t, true, env.Pagination["has_prev"])

	status, env = get(t, app, "/api/news?page=9")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, env.Data)
}

func TestNewsHTTP_AllFeedsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	status, env := get(t, newApp(srv.URL), "/api/news")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "SERVICE_UNAVAILABLE", env.ErrorCode)
}
