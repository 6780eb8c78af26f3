package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/libris/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library over HTTP",
	Long: `Serve renders the home, library and post pages from the content store.

Example:
  libris serve
  libris serve --addr 127.0.0.1:3000
  LIBRIS_STORE_PROJECT_ID=abc123 libris serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int("max-width", 260, "card pill row width budget")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("layout.max_width", serveCmd.Flags().Lookup("max-width"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()

	client, err := newStoreClient(cfg)
	if err != nil {
		return err
	}
	logger.Debug("content store", "endpoint", client.Endpoint(), "cache", cfg.Cache.Enabled)

	server, err := web.NewServer(cfg, client, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}
