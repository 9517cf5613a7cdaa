package handler

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v3"

	"github.com/iepirkumi/tenderlens/internal/port"
	"github.com/iepirkumi/tenderlens/internal/service"
)

// DocumentHandler handles document upload, listing and reading.
type DocumentHandler struct {
	ingest *service.IngestService
	chunks port.ChunkStore
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(ingest *service.IngestService, chunks port.ChunkStore) *DocumentHandler {
	return &DocumentHandler{ingest: ingest, chunks: chunks}
}

// Register sets up document routes.
func (h *DocumentHandler) Register(api fiber.Router) {
	docs := api.Group("/documents")
	docs.Post("/", h.Upload)
	docs.Get("/", h.List)
	docs.Get("/:name", h.Get)
}

// Upload ingests one uploaded file: extract, chunk, embed, store.
func (h *DocumentHandler) Upload(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no file provided"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot open uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cannot read uploaded file"})
	}

	result, err := h.ingest.Ingest(c.Context(), service.IngestRequest{
		FileName:     fileHeader.Filename,
		DocumentName: c.FormValue("document_name"),
		Data:         data,
		Replace:      c.FormValue("replace_existing") == "true",
	})
	if err != nil {
		return c.Status(ingestStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}

// List returns one summary per stored document.
func (h *DocumentHandler) List(c fiber.Ctx) error {
	docs, err := h.chunks.ListDocuments(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"documents": docs, "count": len(docs)})
}

// Get returns a document's chunks in reconstruction order.
func (h *DocumentHandler) Get(c fiber.Ctx) error {
	name := c.Params("name")

	chunks, err := h.chunks.ListByDocument(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(chunks) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "document not found"})
	}

	return c.JSON(fiber.Map{
		"document": name,
		"chunks":   chunks,
		"count":    len(chunks),
	})
}

// ingestStatus maps pipeline errors onto HTTP statuses: user-correctable input
// problems are 400, a failing embedding backend is 502, the rest 500.
func ingestStatus(err error) int {
	switch {
	case errors.Is(err, port.ErrUnsupportedFormat),
		errors.Is(err, port.ErrInvalidEncoding),
		errors.Is(err, port.ErrExtractionFailed):
		return fiber.StatusBadRequest
	case errors.Is(err, port.ErrEmbeddingFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
