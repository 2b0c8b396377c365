package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/news/model"
	"tvdigital_backend/internals/features/news/service"
	helper "tvdigital_backend/internals/helpers"
)

type NewsController struct {
	Svc *service.NewsService
}

func NewNewsController(svc *service.NewsService) *NewsController {
	return &NewsController{Svc: svc}
}

// GET /api/news?page=&per_page=
func (ctl *NewsController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, service.DefaultLimit, service.MaxLimit)

	articles, err := ctl.Svc.Latest(c.UserContext(), service.MaxLimit)
	if err != nil {
		if errors.Is(err, service.ErrNoFeedAvailable) {
			log.Printf("[WARN] news: %v", err)
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Berita sedang tidak bisa dimuat, coba lagi nanti")
		}
		return helper.JsonStoreError(c, err)
	}

	page := []model.Article{}
	if p.Offset < len(articles) {
		end := p.Offset + p.Limit
		if end > len(articles) {
			end = len(articles)
		}
		page = articles[p.Offset:end]
	}
	pg := helper.BuildPagination(int64(len(articles)), p, len(page))
	return helper.JsonList(c, "ok", page, &pg)
}
