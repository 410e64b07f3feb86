package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pb33f/glam/motor"
)

const (
	envBaseURL = "GLAM_BASE_URL"
	envTimeout = "GLAM_TIMEOUT"
)

var (
	verbose    bool
	baseURL    string
	timeout    time.Duration
	thumbWidth int
	Logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "glam",
		Short: "A terminal browser for makeup product catalogs",
		Long: `glam loads a makeup product catalog from a remote JSON API and lets you
browse it in the terminal. Filter by brand, product type, category and tag,
and preview product images as the rows scroll into view.`,
		Args: cobra.NoArgs,
		Example: `  glam
  glam --base-url http://localhost:9876/api/v1/products.json
  glam -v --timeout 10s`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runGlam,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// a missing .env is fine, flags fall back to built-in defaults
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", envString(envBaseURL, motor.DefaultBaseURL), "Catalog API url (env "+envBaseURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", envDuration(envTimeout, motor.DefaultClientOptions().Timeout), "HTTP timeout (env "+envTimeout+")")
	rootCmd.Flags().IntVar(&thumbWidth, "thumb-width", 24, "Thumbnail width in terminal cells")

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

func runGlam(cmd *cobra.Command, args []string) error {
	if thumbWidth < 4 {
		return fmt.Errorf("thumb-width must be at least 4, got %d", thumbWidth)
	}

	if err := LaunchTUI(); err != nil {
		return fmt.Errorf("failed to launch TUI: %w", err)
	}

	return nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// newCatalogClient builds the HTTP client from the persistent flags
func newCatalogClient(logger *slog.Logger) *motor.HTTPCatalogClient {
	opts := motor.DefaultClientOptions()
	opts.BaseURL = baseURL
	opts.Timeout = timeout
	opts.UserAgent = "glam/" + Version
	opts.Logger = logger
	return motor.NewCatalogClient(opts)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration accepts a Go duration ("15s") or a plain number of seconds
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
