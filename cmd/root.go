package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/cmdvault/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration
// It will be accessible to all Cobra commands throughout the application
var Cfg *config.Config

// RootCmd is the base command for the CLI application
// All other commands (run-server, migrate, submit, stats) are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "cmdvault",
	Short: "A catalog service for shareable command snippets",
	Long: `A catalog service for shareable command snippets that stores submissions,
serves filterable listings, tracks views, likes and shares, and exposes
raw snippet retrieval by short id.`,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Set up configuration initialization to run before any command executes
	cobra.OnInitialize(initConfig)

	// Subcommands register themselves via their own init() functions,
	// which keeps the command packages decoupled and avoids import cycles.
}

// initConfig loads the application configuration
// This function is called at the beginning of every Cobra command execution
// thanks to `cobra.OnInitialize(initConfig)` set up above
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Problem loading configuration: %v. Using default values.", err)
	}
}
