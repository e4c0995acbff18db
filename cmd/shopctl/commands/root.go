package commands

import (
	"fmt"
	"os"

	"go-shopkeeper/internal/config"
	"go-shopkeeper/pkg/database"
	applog "go-shopkeeper/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL   string
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Operator tooling for the Shopkeeper API",
	Long: `shopctl runs maintenance tasks against the Shopkeeper database.

Database settings come from the same environment variables as the API
(DATABASE_URL or DB_*), or from --db.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig reads the environment without the API's validation; shopctl only
// needs the database settings.
func loadConfig() (*config.Config, error) {
	envErr := config.LoadEnvFiles(envFile)
	cfg, err := config.Read(viper.New())
	if err != nil {
		return nil, err
	}
	if envErr != nil {
		log := newLogger(cfg)
		log.Debug().Err(envErr).Msg("no env file, using the process environment")
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return applog.NewWithWriter(os.Stderr, level, cfg.LogPretty)
}

func openDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	return database.Connect(database.Options{
		DSN:             cfg.DSN(),
		MaxIdleConns:    1,
		MaxOpenConns:    2,
		ConnMaxLifetime: cfg.DbConnMaxLifetime,
		Logger:          log,
	})
}
