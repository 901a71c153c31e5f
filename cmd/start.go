package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"employee-sync/core/loader"
	"employee-sync/core/logger"
	"employee-sync/core/middleware/auth"
	"employee-sync/core/middleware/rayid"
	"employee-sync/feature/employee"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "employee-sync/docs/swagger"
)

// @title Employee Sync API
// @version 1.0
// @description Mirrors DataHub personnel records into the local employee directory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server and scheduler",
	Long:  `Starts the HTTP API and runs a sync every sync.interval_minutes until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		zap.ReplaceGlobals(rt.logger)
		logg := rt.logger

		app := newApp(rt)

		go rt.service.Schedule(ctx, rt.cfg.Sync.Interval(), rt.cfg.Sync.RunOnStart)

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			errCh <- app.Listen(rt.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed to start: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(rt.cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		return nil
	},
}

// newApp builds the fiber application with middleware and features.
func newApp(rt *runtime) *fiber.App {
	logg := rt.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line can carry it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Swagger stays public
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

	mgr := loader.NewManager()
	mgr.Register(employee.NewFeature(rt.service))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	logg.Info("Features loaded", zap.Strings("features", loaded))

	return app
}

func init() {
	RootCmd.AddCommand(startCmd)
}

