package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "portfolio",
	Short:        "Serve the Jan Novák portfolio page",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

var faviconOut string

var faviconCmd = &cobra.Command{
	Use:   "favicon",
	Short: "Write the generated favicon as a PNG file",
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := NewFavicon().Render()
		if err != nil {
			return err
		}
		if err := os.WriteFile(faviconOut, data, 0o644); err != nil {
			return fmt.Errorf("write favicon: %w", err)
		}
		logrus.WithField("path", faviconOut).Info("Favicon written")
		return nil
	},
}

func init() {
	faviconCmd.Flags().StringVarP(&faviconOut, "out", "o", "favicon.png", "output file")
	rootCmd.AddCommand(serveCmd, faviconCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	site, err := LoadSite(cfg.ContentPath)
	if err != nil {
		return err
	}

	srv, err := NewServer(cfg, site, NewFavicon())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("Exiting")
		os.Exit(1)
	}
}
