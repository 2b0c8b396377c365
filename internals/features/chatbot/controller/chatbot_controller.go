package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tvdigital_backend/internals/features/chatbot/dto"
	"tvdigital_backend/internals/features/chatbot/service"
	helper "tvdigital_backend/internals/helpers"
	"tvdigital_backend/internals/helpers/breaker"
)

type ChatbotController struct {
	Client *service.Client
}

func NewChatbotController(client *service.Client) *ChatbotController {
	return &ChatbotController{Client: client}
}

// POST /api/chatbot
func (ctl *ChatbotController) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body request tidak valid")
	}

	reply, err := ctl.Client.Ask(c.UserContext(), req.Message)
	if err != nil {
		return writeChatbotError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.AskResponse{Reply: reply})
}

func writeChatbotError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyPrompt), errors.Is(err, service.ErrPromptTooLong):
		return helper.JsonValidationError(c, err.Error(), map[string][]string{"message": {err.Error()}}, nil)
	case errors.Is(err, service.ErrNotConfigured):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Chatbot belum tersedia")
	case errors.Is(err, service.ErrAnswerBlocked):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case breaker.IsOpen(err):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Chatbot sedang sibuk, coba lagi nanti")
	default:
		log.Printf("[ERROR] chatbot: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Chatbot sedang bermasalah, coba lagi nanti")
	}
}
