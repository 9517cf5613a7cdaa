package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/iepirkumi/tenderlens/internal/adapter/ai"
	"github.com/iepirkumi/tenderlens/internal/adapter/store"
	"github.com/iepirkumi/tenderlens/internal/handler"
	"github.com/iepirkumi/tenderlens/internal/mcp"
	"github.com/iepirkumi/tenderlens/internal/middleware"
	"github.com/iepirkumi/tenderlens/internal/service"
	"github.com/iepirkumi/tenderlens/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting TenderLens",
		"port", cfg.Port,
		"ai_gateway", cfg.AIBaseURL,
		"embed_model", cfg.EmbedModel,
		"chat_model", cfg.ChatModel,
		"mcp_enabled", cfg.MCPEnabled,
	)

	// ── Database ─────────────────────────────────────────────────────────
	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := pgStore.EnsureSchema(context.Background(), cfg.EmbeddingDimension); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	vectorStore := store.NewVectorStore(pgStore, cfg.EmbeddingDimension)

	// ── Adapters ─────────────────────────────────────────────────────────
	gateway := ai.NewGatewayProvider(ai.GatewayConfig{
		BaseURL:       cfg.AIBaseURL,
		Token:         cfg.AIToken,
		ChatModel:     cfg.ChatModel,
		EmbedModel:    cfg.EmbedModel,
		Dimensions:    cfg.EmbeddingDimension,
		EmbedMaxChars: cfg.EmbedMaxChars,
	})

	// ── Services ─────────────────────────────────────────────────────────
	ingestService := service.NewIngestService(gateway, vectorStore, cfg.ChunkTargetSize, cfg.MinChunkLength)
	chatService := service.NewChatService(gateway, vectorStore, cfg.ScoreThreshold, cfg.TopK, cfg.FallbackLimit)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // answer streams outlive ordinary responses
		BodyLimit:    32 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))
	app.Use(middleware.AuditMiddleware(pgStore))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	documentHandler := handler.NewDocumentHandler(ingestService, vectorStore)
	documentHandler.Register(api)

	chatHandler := handler.NewChatHandler(chatService)
	chatHandler.Register(api)

	seedHandler := handler.NewSeedHandler(ingestService)
	seedHandler.Register(api)

	auditHandler := handler.NewAuditHandler(pgStore)
	auditHandler.Register(api)

	// ── MCP Server (separate port) ───────────────────────────────────────
	if cfg.MCPEnabled {
		mcpServer := mcp.NewServer(chatService, vectorStore, cfg.MCPPort)
		go func() {
			if err := mcpServer.Start(); err != nil {
				slog.Error("MCP server failed", "error", err)
			}
		}()
	}

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
