package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"evervital-bot/config"
	"evervital-bot/middleware"
	"evervital-bot/models"
	"evervital-bot/services"
)

// maxContentLength bounds each forwarded turn's content, in characters
const maxContentLength = 2000

const defaultSystemPrompt = "You are the Evervital assistant for a health subscription service offering " +
	"at-home lab tests and hormone programs. Answer member questions briefly and accurately. " +
	"Never give medical diagnoses."

// ChatHandler proxies sanitized conversations to the upstream model
// service. It is stateless per invocation; the rate limiter table is the
// only cross-request state.
func ChatHandler(cfg *config.Config, limiter *services.RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Registered with app.All so the 405 carries the JSON error body
		// the API contract promises (fiber's built-in 405 is plain text).
		if c.Method() != fiber.MethodPost {
			return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
				"error": "Method not allowed",
			})
		}

		if cfg.AnthropicAPIKey == "" {
			slog.Error("Chat request rejected: upstream API key not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Service temporarily unavailable",
			})
		}

		callerKey := middleware.CallerKeyFromCtx(c)
		if !limiter.Allow(callerKey) {
			slog.Warn("Rate limit exceeded", "callerKey", callerKey)
			c.Set("Retry-After", "10")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please wait a moment and try again.",
			})
		}

		var req models.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if len(req.Messages) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "messages array is required",
			})
		}

		messages := make([]models.ConversationTurn, len(req.Messages))
		for i, m := range req.Messages {
			messages[i] = sanitizeTurn(m)
		}

		systemPrompt := req.SystemPrompt
		if systemPrompt == "" {
			systemPrompt = defaultSystemPrompt
		}

		reply, err := services.GetClaudeReply(c.Context(), cfg, systemPrompt, messages)
		if err != nil {
			slog.Error("Upstream call failed", "callerKey", callerKey, "error", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Upstream service unavailable",
			})
		}

		c.Set("Cache-Control", "no-store")
		return c.JSON(models.ChatReply{Reply: reply})
	}
}

// sanitizeTurn coerces the role to user unless it is exactly assistant and
// truncates oversized content before it reaches the upstream service.
func sanitizeTurn(turn models.ConversationTurn) models.ConversationTurn {
	role := "user"
	if turn.Role == "assistant" {
		role = "assistant"
	}

	content := turn.Content
	if runes := []rune(content); len(runes) > maxContentLength {
		content = string(runes[:maxContentLength])
	}

	return models.ConversationTurn{Role: role, Content: content}
}
