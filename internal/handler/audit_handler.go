package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/iepirkumi/tenderlens/internal/adapter/store"
)

// AuditHandler exposes the recent request activity log.
type AuditHandler struct {
	store *store.PostgresStore
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(pgStore *store.PostgresStore) *AuditHandler {
	return &AuditHandler{store: pgStore}
}

// Register sets up audit routes.
func (h *AuditHandler) Register(api fiber.Router) {
	api.Get("/logs", h.List)
}

// List returns the most recent audit entries.
func (h *AuditHandler) List(c fiber.Ctx) error {
	logs, err := h.store.ListAuditLogs(c.Context(), 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"logs": logs, "count": len(logs)})
}
