package command

import (
	"fmt"

	"yamdb/database"
	"yamdb/internal/app"
	"yamdb/internal/config"
	"yamdb/internal/logging"
	"yamdb/internal/microservices/http-api/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// admin.go holds the commands that talk to the database directly.

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db, logging.New(cfg)); err != nil {
			return err
		}
		color.Green("✓ Schema is up to date")
		return nil
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create an active superuser with the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		_, db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := service.NewUserService(app.NewRepositories(db).Users)
		user, err := users.CreateSuperuser(cmd.Context(), username, email)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}

		color.Green("✓ Admin %s created", user.Username)
		fmt.Println("Request a confirmation code with: yamdbctl auth signup")
		return nil
	},
}

func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	db, err := database.OpenGorm(cfg, logging.New(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func init() {
	createAdminCmd.Flags().StringP("username", "u", "", "Admin username")
	createAdminCmd.Flags().StringP("email", "e", "", "Admin email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
}
