package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/port"
	"github.com/iepirkumi/tenderlens/internal/service"
)

// Latvian user-facing failure messages.
const (
	msgRateLimited    = "Pārāk daudz pieprasījumu. Lūdzu, mēģiniet vēlāk."
	msgQuotaExhausted = "Nepieciešams papildināt kredītus."
	msgGenericFailure = "Atvainojiet, radās kļūda. Lūdzu, mēģiniet vēlreiz."
)

// ChatHandler handles grounded question answering over the tender corpus.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Register sets up chat routes.
func (h *ChatHandler) Register(api fiber.Router) {
	api.Post("/chat", h.Stream)
	api.Post("/chat/complete", h.Complete)
}

type chatRequest struct {
	Messages []domain.Turn `json:"messages"`
}

// Stream answers a conversation as an SSE stream: one metadata frame
// (reasoning plus used document names), then content deltas in arrival order,
// terminated with an explicit [DONE] marker.
func (h *ChatHandler) Stream(c fiber.Ctx) error {
	var body chatRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "messages must not be empty"})
	}

	// The stream writer runs after this handler returns, so cancellation has
	// to be explicit: when the writer exits (consumer gone or [DONE] sent),
	// the cancel releases the upstream generative call.
	ctx, cancel := context.WithCancel(c.Context())

	events, err := h.chat.Ask(ctx, body.Messages)
	if err != nil {
		cancel()
		status, msg := chatStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	return c.SendStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for event := range events {
			if event.Type == domain.EventDone {
				fmt.Fprint(w, "data: [DONE]\n\n")
				w.Flush()
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("marshal stream event", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			if err := w.Flush(); err != nil {
				// Consumer went away; stop forwarding, the context
				// cancellation releases the upstream call.
				return
			}
		}
	})
}

// Complete is the non-streaming surface: the full answer and reasoning are
// computed server-side and returned in one object.
func (h *ChatHandler) Complete(c fiber.Ctx) error {
	var body chatRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(body.Messages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "messages must not be empty"})
	}

	answer, err := h.chat.AskOnce(c.Context(), body.Messages)
	if err != nil {
		status, msg := chatStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(answer)
}

// chatStatus maps generative-service failures onto distinct user-facing
// responses; retrieval-path failures never reach here, they only narrow
// context quality.
func chatStatus(err error) (int, string) {
	switch {
	case errors.Is(err, port.ErrRateLimited):
		return fiber.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, port.ErrQuotaExhausted):
		return fiber.StatusPaymentRequired, msgQuotaExhausted
	default:
		slog.Error("chat failed", "error", err)
		return fiber.StatusInternalServerError, msgGenericFailure
	}
}
