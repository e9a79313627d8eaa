package command

// root.go defines the root command and the global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string // global flag for the API base URL

var rootCmd = &cobra.Command{
	Use:   "yamdbctl",
	Short: "yamdbctl - yamdb operator and user CLI",
	Long: `yamdbctl talks to the yamdb API and its database. It can:
- apply the database schema (migrate)
- create an administrator account (createadmin)
- sign up and exchange a confirmation code for a token (auth)
- browse titles, genres and categories, and post reviews

Use "yamdbctl command --help" to see the flags of each command.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080/api/v1", "API base URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(categoryCmd)
}
