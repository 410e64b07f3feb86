package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pb33f/glam/catgen"
	"github.com/pb33f/glam/motor/model"
)

const shutdownGrace = 10 * time.Second

var (
	port          int
	serveCount    int
	serveSeed     int64
	serveNoImages bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [catalog.json]",
	Short: "Start a local mock of the catalog API",
	Long: `Start an HTTP server that answers like the remote catalog API.
Products are read from a catalog file, or generated when no file is given.
The server filters by brand and product_type exactly as the remote does and
serves colour swatches for generated image links.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  glam serve
  glam serve catalog.json --port 8080
  glam serve -n 500 --seed 7 -v`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&port, "port", "p", 9876, "Port to listen on")
	serveCmd.Flags().IntVarP(&serveCount, "products", "n", catgen.DefaultGenerateOptions.ProductCount, "Products to generate when no catalog file is given")
	serveCmd.Flags().Int64Var(&serveSeed, "seed", 1, "Seed for the generated catalog")
	serveCmd.Flags().BoolVar(&serveNoImages, "no-images", false, "Generate products without image links")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	// Validate port range
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}

	products, source, err := serveCatalog(args)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:              addr,
		Handler:           catgen.NewHandler(products, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// capture interrupt signals for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("mock catalog server starting",
			"source", source,
			"products", len(products),
			"address", fmt.Sprintf("http://localhost:%d%s", port, catgen.CatalogPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down mock catalog server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("server close error", "error", closeErr)
			}
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("mock catalog server stopped")
	return nil
}

// serveCatalog reads the catalog file given on the command line, or generates one
func serveCatalog(args []string) ([]model.Product, string, error) {
	if len(args) == 1 {
		if err := ValidateCatalogFile(args[0]); err != nil {
			return nil, "", err
		}
		products, stats, err := catgen.LoadCatalogFile(args[0])
		if err != nil {
			return nil, "", err
		}
		GetLogger().Debug("catalog file decoded",
			"file", args[0],
			"category_variants", stats.CategoryNormalized,
			"image_variants", stats.ImageNormalized)
		return products, args[0], nil
	}

	opts := catgen.DefaultGenerateOptions
	opts.ProductCount = serveCount
	opts.Seed = serveSeed
	if !serveNoImages {
		// plain http, a protocol-relative link would resolve to https
		opts.ImageBaseURL = fmt.Sprintf("http://localhost:%d/images", port)
	}

	return catgen.Generate(opts), "generated", nil
}

// ValidateCatalogFile checks that the catalog file exists and is not a directory
func ValidateCatalogFile(path string) error {
	if path == "" {
		return fmt.Errorf("catalog file path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("catalog file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing catalog file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	return nil
}
