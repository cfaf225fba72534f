package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"valortracker/core/config"
	"valortracker/core/loader"
	"valortracker/core/logger"
	"valortracker/core/metrics"
	"valortracker/core/middleware/auth"
	"valortracker/core/middleware/rayid"
	"valortracker/core/tasks"
	"valortracker/feature/agents"
	"valortracker/feature/matches"
	"valortracker/feature/matches/models"
	"valortracker/feature/players"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "valortracker/docs/swagger"
)

// @title Valortracker API
// @version 1.0
// @description Match history synchronization for Valorant players.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the match history server",
	Long:  `Starts the HTTP server, the background sync workers and, when enabled, the scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 3. Connect database, cache, remote source and archive
		d, err := openDeps(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize dependencies", zap.Error(err))
		}
		defer d.close()

		// 4. Background workers
		queue := tasks.NewQueue(d.cache, taskConfig(cfg.Sync), logg, models.IsRetryable)
		matchSvc := matches.NewService(d.store, d.henrik, d.cache, queue, d.archive, cfg.Sync, logg)
		playerSvc := players.NewService(d.henrik, d.store, logg)
		queue.Start(ctx)

		var sched *matches.Scheduler
		if cfg.Sync.ScheduleEnabled {
			sched, err = matches.NewScheduler(cfg.Sync.ScheduleInterval, d.store, matchSvc, logg)
			if err != nil {
				logg.Fatal("Failed to create scheduler", zap.Error(err))
			}
			sched.Start()
			logg.Info("Scheduled syncs enabled", zap.Duration("interval", cfg.Sync.ScheduleInterval))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			Immutable:             true,
			ReadTimeout:           cfg.Server.ReadTimeout,
			WriteTimeout:          cfg.Server.WriteTimeout,
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(matches.NewFeature(matchSvc))
		mgr.Register(players.NewFeature(playerSvc))
		mgr.Register(agents.NewFeature(agents.NewService(d.db, agents.NewClient(cfg.Agents), logg)))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/metrics", metrics.Handler())

		// 4. CORS (before auth so preflights are answered)
		app.Use(cors.New(cfg.Server.CORS()))

		// 5. Auth (Protect API)
		if !cfg.Server.AuthEnabled() {
			logg.Warn("API key is empty, authentication is disabled")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: []string{"/health"}}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.ListenAddr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		if sched != nil {
			_ = sched.Shutdown()
		}
		cancel()
		queue.Wait()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
