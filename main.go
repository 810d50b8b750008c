package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/diogo-costa-silva/portfolio/api"
	"github.com/diogo-costa-silva/portfolio/config"
)

var settings config.Settings

func main() {
	rootCmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio projects backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load environment variables from .env file
			if err := godotenv.Load(); err != nil {
				fmt.Printf("Warning: Error loading .env file: %v\n", err)
			}
			settings = config.Load(config.New())
			setupLogging(settings.LogLevel, settings.LogJSON)
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(refreshCmd())
	rootCmd.AddCommand(cacheCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setupLogging writes human readable console output unless jsonOutput is set.
func setupLogging(level string, jsonOutput bool) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	if jsonOutput {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Initializing app...")

			app, err := newApp(cmd.Context(), settings)
			if err != nil {
				return err
			}

			server, err := api.NewServer(settings, app.db, api.Services{Loader: app.loader})
			if err != nil {
				return fmt.Errorf("initialize server: %w", err)
			}

			errChannel := make(chan error)

			go server.Start(errChannel)

			// Listen for interrupt signals to gracefully shutdown the server
			go listenToInterrupt(errChannel)

			fatalErr := <-errChannel
			fmt.Printf("Closing server: %v\n", fatalErr)

			server.ShutdownGracefully(30 * time.Second)
			return nil
		},
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
