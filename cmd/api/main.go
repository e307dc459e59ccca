package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uploadapi/docs"
	"uploadapi/internal/category"
	"uploadapi/internal/config"
	handlers "uploadapi/internal/http/handler"
	"uploadapi/internal/http/middleware"
	"uploadapi/internal/logger"
	"uploadapi/internal/metrics"
	"uploadapi/internal/otel"
	"uploadapi/internal/service"
	"uploadapi/internal/storage"
)

// @title Upload API
// @version 1.0
// @description Category-organized document and image uploads.
// @BasePath /
func main() {
	// Load configuration from the optional config file and environment (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(os.Stderr, "info", time.UTC)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.New(os.Stdout, cfg.LogLevel, logger.Location(cfg.Timezone))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}

	store, presigner, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to initialize storage")
	}

	// Categories are always kept on local disk, whatever the file backend.
	docCategories, err := category.NewFileStore(cfg.CategoriesPath(), log, m)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CategoriesPath()).Msg("failed to open category store")
	}
	imageCategories := category.NewStaticSet(category.ImageCategories...)

	namer := service.NewNamer()
	docSvc := service.NewFileService(service.Documents(docCategories, cfg.DocumentsDir), store, namer, log, m)
	imageSvc := service.NewFileService(service.Images(imageCategories), store, namer, log, m)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		ReadTimeout:           time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeoutSec) * time.Second,
		DisableStartupMessage: true,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(otelfiber.Middleware())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Stored files are public under /uploads.
	if presigner != nil {
		app.Get("/uploads/"+path.Join(cfg.DocumentsDir, cfg.CategoriesFile), handlers.LocalFile(cfg.CategoriesPath()))
		app.Get("/uploads/*", handlers.PresignedUploads(presigner, time.Duration(cfg.PresignExpirySec)*time.Second))
	} else {
		app.Static("/uploads", cfg.UploadRoot, fiber.Static{Browse: false})
	}

	handlers.RegisterRoutes(app, store, docSvc, imageSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.StorageBackend).Str("upload_root", cfg.UploadRoot).Msg("server listening")
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("tracer shutdown")
	}
}

// newStorage picks the file backend. Only the object store hands out presigned URLs.
func newStorage(cfg *config.AppConfig) (storage.Storage, storage.Presigner, error) {
	switch cfg.StorageBackend {
	case config.BackendMinIO:
		s, err := storage.NewMinIO(cfg.MinIO)
		if err != nil {
			return nil, nil, err
		}
		p, _ := s.(storage.Presigner)
		return s, p, nil
	default:
		s, err := storage.NewLocal(filepath.Clean(cfg.UploadRoot))
		return s, nil, err
	}
}
