package employee

import (
	"employee-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/run", h.HandleRun)
	group.Get("/schema", h.HandleSchema)
}

// HandleStatus returns the run state.
// @Summary Sync Status
// @Description Returns the persisted run state, whether a run is in flight and the latest run report.
// @Tags sync
// @Produce json
// @Success 200 {object} Status "Sync Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to read sync status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleRun triggers a sync run and waits for it.
// @Summary Run Sync
// @Description Triggers a sync run, or joins the run already in flight. The mode is chosen from the run state unless a full audit is forced.
// @Tags sync
// @Produce json
// @Param all query boolean false "Force a full audit"
// @Success 200 {object} report.Report "Run Report"
// @Failure 500 {object} report.Report "Run Failed"
// @Router /sync/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	forceFull := c.QueryBool("all", false)
	l.Info("Sync run requested", zap.Bool("all", forceFull))

	rep, shared, err := h.service.Trigger(c.Context(), forceFull)
	if err != nil {
		l.Error("Sync run could not record its state", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if shared {
		c.Set("X-Sync-Shared-Run", "true")
	}
	if !rep.Successful {
		return c.Status(fiber.StatusInternalServerError).JSON(rep)
	}
	return c.JSON(rep)
}

// HandleSchema checks the directory table against the mapped fields.
// @Summary Check Directory Schema
// @Description Lists which mapped fields the directory table has, which are skipped and whether required columns are missing.
// @Tags sync
// @Produce json
// @Success 200 {object} SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/schema [get]
func (h *Handler) HandleSchema(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Directory table misses required columns", zap.Strings("missing", report.MissingRequired))
	}
	return c.JSON(report)
}
