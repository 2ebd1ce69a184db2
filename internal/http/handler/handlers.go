package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"evault/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness endpoint with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument accepts a multipart form (file, owner, meta) and stores the
// file as a new custody record.
//
// @Summary Upload a document
// @Accept mpfd
// @Produce json
// @Param file formData file true "document content"
// @Param owner formData string false "owner name or ID"
// @Param meta formData string false "free-text metadata"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Router /upload [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		owner := c.FormValue("owner", "unknown")
		meta := c.FormValue("meta")

		doc, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, owner, meta)
		if err != nil {
			if errors.Is(err, service.ErrFileRequired) {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DownloadDocument mints a time-limited access URL for an existing document.
//
// @Summary Get a time-limited download link
// @Produce json
// @Param id path string true "document ID"
// @Success 200 {object} service.DownloadResult
// @Failure 404 {object} errorPayload
// @Router /download/{id} [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		res, err := svc.Download(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DocumentLogs returns the audit trail for one document, newest first.
//
// @Summary Audit log for a document
// @Produce json
// @Param id path string true "document ID"
// @Success 200 {array} model.AuditEntry
// @Router /logs/{id} [get]
func DocumentLogs(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		entries, err := svc.ForDocument(c.UserContext(), id)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(entries)
	}
}

// AllLogs returns up to limit audit entries across all documents, newest first
// within the scanned subset.
//
// @Summary Recent audit log entries across all documents
// @Produce json
// @Param limit query int false "maximum entries to return" default(100)
// @Success 200 {array} model.AuditEntry
// @Router /logs/all [get]
func AllLogs(svc service.AuditService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		entries, err := svc.All(c.UserContext(), limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(entries)
	}
}
