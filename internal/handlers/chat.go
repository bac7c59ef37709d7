package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/models"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

// ChatClient sends a prompt to a language model
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, message string) (string, error)
}

// ChatHandler proxies dashboard questions to the AI assistant
type ChatHandler struct {
	client    ChatClient
	provider  data.Provider
	mode      models.CurrencyMode
	formatter *services.MoneyFormatter
}

// NewChatHandler creates a chat handler. Server-built context renders amounts in mode.
// A nil client makes the endpoint report the assistant as unavailable.
func NewChatHandler(client ChatClient, provider data.Provider, mode models.CurrencyMode, formatter *services.MoneyFormatter) *ChatHandler {
	return &ChatHandler{
		client:    client,
		provider:  provider,
		mode:      mode,
		formatter: formatter,
	}
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	if h.client == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "AI assistant is not configured")
	}

	var req ChatRequest
	if err := c.Bind().JSON(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Message is required")
	}

	ctx := c.Context()
	log := logger.FromContext(ctx)

	financialContext := req.Context
	if strings.TrimSpace(financialContext) == "" && h.provider != nil {
		snap, err := h.provider.Snapshot(ctx)
		if err != nil {
			// The assistant still answers, only without figures
			log.Warn().Err(err).Msg("chat: snapshot unavailable, continuing without context")
		} else {
			financialContext = services.BuildChatContext(snap, h.mode, h.formatter)
		}
	}

	reply, err := h.client.Complete(ctx, services.ChatSystemPrompt(financialContext), message)
	if err != nil {
		log.Error().Err(err).Msg("chat: completion failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process the request")
	}
	if reply == "" {
		reply = services.FallbackReply
	}

	return c.JSON(fiber.Map{"reply": reply})
}
