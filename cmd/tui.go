package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/pb33f/glam/motor"
	"github.com/pb33f/glam/tui"
)

const tuiLogFile = "glam.log"

// LaunchTUI runs the interactive browser against the configured catalog API.
func LaunchTUI() error {
	// the alt screen owns stderr while the program runs
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	client := newCatalogClient(logger)
	session := motor.NewSession(client, logger)

	thumbHeight := max(2, thumbWidth/2)
	loader := motor.NewImageLoader(client, motor.ImageLoaderOptions{
		Renderer: motor.RenderThumbnailFunc(thumbWidth, thumbHeight),
		Logger:   logger,
	})

	model := tui.NewCatalogViewModel(session, loader, tui.Options{
		Source:      client.CatalogURL("", ""),
		ThumbWidth:  thumbWidth,
		ThumbHeight: thumbHeight,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	// cleanup resources
	if m, ok := finalModel.(*tui.CatalogViewModel); ok {
		if err := m.Cleanup(); err != nil {
			return fmt.Errorf("cleanup error: %w", err)
		}
		logger.Info("session ended", "selection", m.Selection().String(), "results", len(m.Products()))
	}

	return nil
}

func fileLogger() (*slog.Logger, func(), error) {
	path := filepath.Join(os.TempDir(), tuiLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger, func() { _ = f.Close() }, nil
}
