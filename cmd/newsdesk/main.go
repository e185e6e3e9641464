package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"Newsdesk/internal/api"
	"Newsdesk/internal/app"
	"Newsdesk/internal/config"
	"Newsdesk/internal/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	root := &cobra.Command{
		Use:           "newsdesk",
		Short:         "Homepage feed composition service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the article and homepage API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()
			return application.Run(ctx)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "compose",
		Short: "Compose the homepage once and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(api.NewHomepageView(application.Compose(cmd.Context())))
		},
	})

	var fixturesPath string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load categories and articles from a YAML fixtures file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(fixturesPath)
			if err != nil {
				return err
			}
			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			_, err = application.Seed(cmd.Context(), raw)
			return err
		},
	}
	seedCmd.Flags().StringVarP(&fixturesPath, "file", "f", "configs/fixtures.yaml", "fixtures file")
	root.AddCommand(seedCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
