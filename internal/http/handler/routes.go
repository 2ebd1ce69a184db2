package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"evault/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers translate transport concerns only; all logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, auditSvc service.AuditService) {
	// Readiness (DB ping) and plain liveness probes
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/upload", UploadDocument(docSvc))
	app.Get("/download/:id", DownloadDocument(docSvc))

	// /logs/all must be bound before /logs/:id or Fiber routes "all" as an id.
	app.Get("/logs/all", AllLogs(auditSvc))
	app.Get("/logs/:id", DocumentLogs(auditSvc))
}
