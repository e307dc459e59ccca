package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"uploadapi/internal/service"
	"uploadapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Documents live under /documents; images are mounted at the root.
func RegisterRoutes(app *fiber.App, store storage.Storage, docs, images service.FileService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	// /categories is registered before /:category so it is not taken for a category name
	d := app.Group("/documents")
	d.Get("/categories", ListCategories(docs))
	d.Post("/categories", CreateCategory(docs))
	d.Post("/upload/:category", Upload(docs))
	d.Get("/:category", ListDocuments(docs))
	d.Delete("/:category/:filename", DeleteFile(docs))

	app.Post("/upload/:category", Upload(images))
	app.Get("/photos/:category", ListPhotos(images))
	app.Delete("/photos/:category/:filename", DeleteFile(images))
}

// HealthCheck godoc
// @Summary Storage health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain 200 for process liveness checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// PresignedUploads redirects /uploads/<key> to a time-limited URL of the object store.
func PresignedUploads(p storage.Presigner, expiry time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := param(c, "*")
		if key == "" {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
		}
		u, err := p.PresignGet(c.UserContext(), key, expiry)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "IO_FAILURE", "storage operation failed")
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// LocalFile serves one file from local disk. With an object store backend the
// categories file stays on disk, so its /uploads URL is answered here.
func LocalFile(path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(path)
	}
}
