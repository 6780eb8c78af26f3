package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/libris/internal/cache"
	"github.com/ppiankov/libris/internal/model"
	"github.com/ppiankov/libris/internal/store"
)

// Version is set via ldflags at build time
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Libris - a server-rendered reading room for a headless article store",
	Long: `Libris serves a browsable library of articles kept in a headless
content store.

It renders portable-text bodies to HTML, groups posts by category,
filters the library by tag and free-text search, and highlights the
sentences that match a search.

The same search is available from the terminal.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "libris %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.libris/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the query cache (force fresh fetch)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// envKeys are bound explicitly so Unmarshal sees them without a config file
var envKeys = []string{
	"server.addr",
	"store.project_id",
	"store.dataset",
	"store.api_version",
	"store.use_cdn",
	"store.token",
	"store.base_url",
	"cache.enabled",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".libris"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// LIBRIS_STORE_PROJECT_ID -> store.project_id
	viper.SetEnvPrefix("LIBRIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, key := range envKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig overlays the config file, environment and bound flags on the
// built-in defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	return cfg, nil
}

func newStoreClient(cfg *model.Config) (*store.Client, error) {
	client, err := store.NewClient(cfg, cache.New(cfg.Cache))
	if err != nil {
		return nil, fmt.Errorf("%w (set store.project_id or LIBRIS_STORE_PROJECT_ID)", err)
	}
	return client, nil
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
