package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/cmdvault/cmd"
	"github.com/axellelanca/cmdvault/internal/config"
	"github.com/axellelanca/cmdvault/internal/repository"
	"github.com/axellelanca/cmdvault/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	submitNameFlag        string
	submitAuthorFlag      string
	submitCodeFileFlag    string
	submitDescriptionFlag string
	submitCategoryFlag    string
	submitTagsFlag        []string
	submitDifficultyFlag  string
)

// SubmitCmd represents the 'submit' command
var SubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submits a new command snippet to the catalog.",
	Long: `This command uploads a snippet read from a file into the catalog and
prints the generated short id. The configured upload API key is used as
the submission credential.

Example:
  cmdvault submit --name="autodl" --author="GoatBot Team" --file=./autodl.js --tags=goatbot --tags=command`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		if submitNameFlag == "" || submitAuthorFlag == "" || submitCodeFileFlag == "" {
			fmt.Println("Error: --name, --author and --file flags are required")
			os.Exit(1)
		}

		code, err := os.ReadFile(submitCodeFileFlag)
		if err != nil {
			fmt.Printf("Error: cannot read snippet file: %v\n", err)
			os.Exit(1)
		}

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

		// The CLI goes through the same ingestion path as the HTTP upload,
		// credential included, so both paths enforce identical rules.
		command, err := commandService.SubmitCommand(cfg.Upload.APIKey, services.SubmitRequest{
			Name:        submitNameFlag,
			Author:      submitAuthorFlag,
			Code:        string(code),
			Description: submitDescriptionFlag,
			Category:    submitCategoryFlag,
			Tags:        submitTagsFlag,
			Difficulty:  submitDifficultyFlag,
		})
		if err != nil {
			log.Fatalf("Failed to submit command: %v", err)
		}

		fmt.Printf("Command submitted successfully:\n")
		fmt.Printf("Id: %d\n", command.ID)
		fmt.Printf("Short id: %s\n", command.ShortID)
		fmt.Printf("Raw URL: %s/raw/%s\n", cfg.Server.BaseURL, command.ShortID)
	},
}

func init() {
	SubmitCmd.Flags().StringVar(&submitNameFlag, "name", "", "Unique name of the command")
	SubmitCmd.Flags().StringVar(&submitAuthorFlag, "author", "", "Author of the command")
	SubmitCmd.Flags().StringVar(&submitCodeFileFlag, "file", "", "Path to the snippet file to upload")
	SubmitCmd.Flags().StringVar(&submitDescriptionFlag, "description", "", "Optional description")
	SubmitCmd.Flags().StringVar(&submitCategoryFlag, "category", "", "Category label (defaults to the catalog fallback)")
	SubmitCmd.Flags().StringArrayVar(&submitTagsFlag, "tags", nil, "Ordered tags (repeat the flag)")
	SubmitCmd.Flags().StringVar(&submitDifficultyFlag, "difficulty", "", "Difficulty label (defaults to the catalog fallback)")

	SubmitCmd.MarkFlagRequired("name")
	SubmitCmd.MarkFlagRequired("author")
	SubmitCmd.MarkFlagRequired("file")

	cmd.RootCmd.AddCommand(SubmitCmd)
}
