package http_handler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/anthanhphan/go-idgen-service/internal/api/config"
	"github.com/anthanhphan/go-idgen-service/internal/api/port"
	"github.com/anthanhphan/go-idgen-service/pkg/idgen"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.IDService
}

func NewServer(cfg *config.Config, service port.IDService) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Post("/ids", s.handleNext)
	s.app.Post("/ids/batch", s.handleBatch)
	s.app.Get("/ids/:id", s.handleDecode)
	s.app.Get("/healthz", s.handleHealth)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.HTTPAddr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// sendGenerationError maps generator failures to HTTP statuses.
func (s *Server) sendGenerationError(c *fiber.Ctx, err error) error {
	var regression *idgen.ClockRegressionError
	switch {
	case errors.As(err, &regression):
		retryAfter := int(math.Ceil(regression.Backoff().Seconds()))
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return s.sendJSONError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, port.ErrInvalidBatch), errors.Is(err, port.ErrBatchTooLarge):
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return s.sendJSONError(c, fiber.StatusRequestTimeout, err.Error())
	default:
		sdklogger.Errorw("ID generation failed", "path", c.Path(), "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleNext(c *fiber.Ctx) error {
	id, err := s.service.Next(c.UserContext())
	if err != nil {
		return s.sendGenerationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": strconv.FormatUint(id, 10),
	})
}

func (s *Server) handleBatch(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.Query("count", "1"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid 'count' query parameter")
	}

	ids, err := s.service.NextBatch(c.UserContext(), count)
	if err != nil {
		return s.sendGenerationError(c, err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strconv.FormatUint(id, 10))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ids": out,
	})
}

func (s *Server) handleDecode(c *fiber.Ctx) error {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid id %q", raw))
	}

	decoded, err := s.service.Decode(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, port.ErrInvalidID) {
			return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
		}
		sdklogger.Warnw("Decode failed", "id", raw, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(decoded)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	info, err := s.service.Info(c.UserContext())
	if err != nil {
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}

	status := fiber.StatusOK
	if !info.Healthy() {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(info)
}
