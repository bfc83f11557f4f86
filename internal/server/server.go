package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/petsivet/petsi-backend/internal/appointments"
	"github.com/petsivet/petsi-backend/internal/config"
	"github.com/petsivet/petsi-backend/internal/dashboard"
	"github.com/petsivet/petsi-backend/internal/documents"
	"github.com/petsivet/petsi-backend/internal/inventory"
	"github.com/petsivet/petsi-backend/pkg/gdrive"
)

// DocumentService is the proxy-service surface the HTTP boundary maps onto.
type DocumentService interface {
	ListFolders(ctx context.Context) ([]documents.FolderWithCount, error)
	ListFiles(ctx context.Context, folderID string) ([]gdrive.File, error)
	CreateFolder(ctx context.Context, name, parentID string) (*gdrive.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (*gdrive.Folder, error)
	RenameFile(ctx context.Context, id, name string) (*gdrive.File, error)
	Delete(ctx context.Context, id string) error
	Upload(ctx context.Context, content io.Reader, name, mimeType, folderID string) (*gdrive.File, error)
	Download(ctx context.Context, id string) (*gdrive.File, []byte, error)
}

// InventoryService lists products for the inventory endpoints.
type InventoryService interface {
	List(ctx context.Context) ([]inventory.Product, error)
}

// AppointmentService lists appointment rows.
type AppointmentService interface {
	List(ctx context.Context) ([]appointments.Cita, error)
}

// DashboardService produces the admin landing-page summary.
type DashboardService interface {
	Summarize(ctx context.Context) (*dashboard.Summary, error)
}

// Server is the HTTP boundary. It validates inputs, maps verbs to service
// calls 1:1, and wraps every service failure into the uniform {error}
// envelope without leaking provider details to the client.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger zerolog.Logger

	docs       DocumentService
	inventario InventoryService
	citas      AppointmentService
	dashboard  DashboardService
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, logger zerolog.Logger, docs DocumentService, inv InventoryService, citas AppointmentService, dash DashboardService) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger.With().Str("component", "http-server").Logger(),
		docs:       docs,
		inventario: inv,
		citas:      citas,
		dashboard:  dash,
	}

	// BodyLimit sits one MiB above the upload ceiling so the multipart
	// framing of a maximum-size file still fits; the exact ceiling is
	// enforced per file in uploadFile.
	s.app = fiber.New(fiber.Config{
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
	}))
	s.app.Use(s.requestLogger)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.app.Group("/api")

	api.Get("/health", s.health)
	api.Get("/dashboard", s.getDashboard)
	api.Get("/citas", s.listCitas)
	api.Get("/inventario", s.listInventario)

	drive := api.Group("/drive")
	drive.Get("/products", s.listInventario)

	drive.Get("/folders", s.listFolders)
	drive.Post("/folders", s.createFolder)
	drive.Patch("/folders/:folderId", s.renameFolder)
	drive.Delete("/folders/:folderId", s.deleteFolder)

	drive.Get("/folders/:folderId/files", s.listFiles)
	drive.Post("/files", s.uploadFile)
	drive.Patch("/files/:fileId", s.renameFile)
	drive.Get("/files/:fileId/download", s.downloadFile)
	drive.Delete("/files/:fileId", s.deleteFile)

	s.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.logger.Info().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
	return err
}

// App exposes the fiber application for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins serving on the configured port and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info().Str("address", addr).Msg("Starting HTTP server")
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("Stopping HTTP server")
	return s.app.ShutdownWithTimeout(30 * time.Second)
}
