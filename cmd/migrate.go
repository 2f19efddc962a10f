package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"project-admin/core/bootstrap"
	"project-admin/core/config"
	"project-admin/core/database"
	"project-admin/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Connects to the configured database and creates or updates every table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, logg, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db, bootstrap.Models()...); err != nil {
			return err
		}
		logg.Info("Schema is up to date", zap.Int("models", len(bootstrap.Models())))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List the schema tables and their columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDatabase(cmd)
		if err != nil {
			return err
		}
		defer database.Close(db)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, model := range bootstrap.Models() {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err != nil {
				return fmt.Errorf("failed to parse model: %w", err)
			}
			table := stmt.Schema.Table

			if !db.Migrator().HasTable(table) {
				fmt.Fprintf(w, "%s\tmissing\t\t\n", table)
				continue
			}
			cols, err := database.GetTableColumns(db, table)
			if err != nil {
				return err
			}
			for _, col := range cols {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", table, col.Field, col.Type, col.Key)
			}
		}
		return w.Flush()
	},
}

// openDatabase loads the configuration and connects without starting the
// HTTP server.
func openDatabase(cmd *cobra.Command) (*gorm.DB, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cmd.Context(), cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, logg, nil
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	RootCmd.AddCommand(migrateCmd)
}
