package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/seed"
	"github.com/iepirkumi/tenderlens/internal/service"
)

// SeedHandler loads the built-in tender corpus through the normal ingestion
// pipeline.
type SeedHandler struct {
	ingest *service.IngestService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(ingest *service.IngestService) *SeedHandler {
	return &SeedHandler{ingest: ingest}
}

// Register sets up the seed route.
func (h *SeedHandler) Register(api fiber.Router) {
	api.Post("/seed", h.Seed)
}

// Seed ingests every built-in document with replace semantics, so repeated
// seeding yields the same index.
func (h *SeedHandler) Seed(c fiber.Ctx) error {
	var results []*domain.IngestResult
	for _, doc := range seed.Corpus() {
		result, err := h.ingest.Ingest(c.Context(), service.IngestRequest{
			FileName:     doc.Name + ".txt",
			DocumentName: doc.Name,
			Data:         []byte(doc.Text),
			Replace:      true,
			Origin:       domain.SourceSeeded,
		})
		if err != nil {
			slog.Error("seeding failed", "document", doc.Name, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":  err.Error(),
				"seeded": results,
			})
		}
		results = append(results, result)
	}

	return c.JSON(fiber.Map{"seeded": results, "count": len(results)})
}
