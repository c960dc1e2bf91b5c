package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/axellelanca/cmdvault/cmd"
	"github.com/axellelanca/cmdvault/internal/api"
	"github.com/axellelanca/cmdvault/internal/config"
	"github.com/axellelanca/cmdvault/internal/models"
	"github.com/axellelanca/cmdvault/internal/monitor"
	"github.com/axellelanca/cmdvault/internal/repository"
	"github.com/axellelanca/cmdvault/internal/services"
	"github.com/axellelanca/cmdvault/internal/workers"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// RunServerCmd represents the 'run-server' Cobra command.
// It is the entry point for launching the catalog API server.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Launches the command catalog API server and background processes.",
	Long: `This command initializes the database, configures the API routes,
starts the asynchronous access workers and the catalog monitor,
then launches the HTTP server.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Automatic migration of the models
		if err := db.AutoMigrate(&models.Command{}, &models.Access{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		commandRepo := repository.NewCommandRepository(db)
		accessRepo := repository.NewAccessRepository(db)
		log.Println("Repositories initialized.")

		commandService := services.NewCommandService(commandRepo, cfg.Upload.APIKey)
		log.Println("Services initialized.")

		// Seed a handful of demo commands when starting on an empty catalog
		if err := seedDemoCommands(commandRepo, commandService); err != nil {
			log.Fatalf("Failed to seed demo commands: %v", err)
		}

		// Initialize the access events channel and start the worker pool
		accessEventsChan := make(chan models.AccessEvent, cfg.Analytics.BufferSize)
		api.AccessEventsChannel = accessEventsChan
		workers.StartAccessWorkers(cfg.Analytics.WorkerCount, accessEventsChan, accessRepo)
		log.Printf("Access events channel initialized with a buffer of %d. %d access worker(s) started.",
			cfg.Analytics.BufferSize, cfg.Analytics.WorkerCount)

		// Initialize and launch the catalog monitor
		monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
		catalogMonitor := monitor.NewCatalogMonitor(commandRepo, monitorInterval)
		go catalogMonitor.Start()
		log.Printf("Catalog monitor started with an interval of %v.", monitorInterval)

		// Configure the Gin router and the API handlers
		router := gin.Default()
		api.SetupRoutes(router, commandService, cfg.Analytics.BufferSize)
		log.Println("API routes configured.")

		serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		// Start the Gin server in a goroutine so the signal wait below
		// keeps the main goroutine blocked.
		go func() {
			log.Printf("Starting server on %s", serverAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()

		// Graceful shutdown: wait for SIGINT/SIGTERM
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutdown signal received. Stopping server...")

		// Stop accepting requests, then give the access workers a moment
		// to drain the event channel before the process exits.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		close(accessEventsChan)
		time.Sleep(2 * time.Second)

		log.Println("Server stopped cleanly.")
	},
}

// seedDemoCommands inserts a few demo entries when the catalog is empty, so a
// fresh install has something to list. Counters are preset to make the
// trending ordering visible immediately.
func seedDemoCommands(commandRepo repository.CommandRepository, commandService *services.CommandService) error {
	count, err := commandRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demo := []models.Command{
		{
			Name:        "autodl",
			Description: "Bot command from GoatBot.",
			Author:      "GoatBot Team",
			Code:        "// autodl code here",
			Category:    "GoatBot",
			Tags:        "goatbot,command",
			Difficulty:  "Intermediate",
			Views:       15,
			Likes:       3,
		},
		{
			Name:        "aryan Chathan",
			Description: "Bot command from GoatBot.",
			Author:      "Aryan",
			Code:        "// aryan code",
			Category:    "GoatBot",
			Tags:        "goatbot,command",
			Difficulty:  "Intermediate",
			Views:       7,
			Likes:       1,
		},
		{
			Name:        "steal",
			Description: "Bot command from GoatBot.",
			Author:      "Unknown",
			Code:        "// steal code",
			Category:    "GoatBot",
			Tags:        "goatbot,command",
			Difficulty:  "Intermediate",
			Views:       23,
			Likes:       5,
		},
	}

	for i := range demo {
		shortID, err := commandService.GenerateShortID(6)
		if err != nil {
			return err
		}
		demo[i].ShortID = shortID
		if err := commandRepo.Create(&demo[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d demo command(s).", len(demo))
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
