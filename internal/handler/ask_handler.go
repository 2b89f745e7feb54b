package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/vidstats/vidstats/internal/service"
)

// AskHandler exposes the question-answering pipeline over HTTP.
type AskHandler struct {
	answers *service.AnswerService
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(answers *service.AnswerService) *AskHandler {
	return &AskHandler{answers: answers}
}

// Register sets up ask routes.
func (h *AskHandler) Register(router fiber.Router) {
	router.Post("/ask", h.Ask)
}

// Ask handles one natural-language question and responds with one number.
// Any pipeline failure maps to a single generic message: the response never
// carries model output, query text or store errors.
func (h *AskHandler) Ask(c fiber.Ctx) error {
	var body struct {
		Question string `json:"question"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	question := strings.TrimSpace(body.Question)
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is required"})
	}

	result, err := h.answers.Answer(c.Context(), question)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "could not understand or compute this question",
		})
	}

	return c.JSON(fiber.Map{"result": result})
}
