package cli

import (
	"fmt"
	"log"

	"github.com/axellelanca/cmdvault/cmd"
	"github.com/axellelanca/cmdvault/internal/config"
	"github.com/axellelanca/cmdvault/internal/repository"
	"github.com/axellelanca/cmdvault/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// StatsCmd represents the 'stats' command
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints global catalog statistics",
	Long:  `Prints the total number of commands, likes and shares across the whole catalog.`,
	Run:   runStats,
}

func init() {
	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats executes the logic for the stats command
func runStats(cobraCmd *cobra.Command, args []string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying SQL database: %v", err)
	}
	defer sqlDB.Close()

	commandRepo := repository.NewCommandRepository(db)
	commandService := services.NewCommandService(commandRepo, cfg.Upload.APIKey)

	stats, err := commandService.GetGlobalStats()
	if err != nil {
		log.Fatalf("Error retrieving statistics: %v", err)
	}

	fmt.Printf("Catalog statistics:\n")
	fmt.Printf("Total commands: %d\n", stats.TotalCommands)
	fmt.Printf("Total likes: %d\n", stats.TotalLikes)
	fmt.Printf("Total shares: %d\n", stats.TotalShares)
	fmt.Printf("Active users: %d\n", stats.ActiveUsers)
}
