package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mpdash/mpdash/internal/config"
	"github.com/mpdash/mpdash/internal/mpd"
	"github.com/mpdash/mpdash/internal/state"
	"github.com/mpdash/mpdash/internal/ui"
)

// Run boots the dashboard until the context is cancelled or the user
// quits. The layout is validated up front; a structurally invalid
// config never reaches the event loop.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The program owns the terminal, so client logs go to a file when
	// asked for and nowhere otherwise.
	if path := os.Getenv("MPDASH_LOG"); path != "" {
		f, err := tea.LogToFile(path, "mpdash")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := mpd.New(cfg.Address)
	store := state.New(cfg)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = client.Run(ctx)
	}()

	err := ui.Run(ctx, ui.Options{
		Client: client,
		Store:  store,
		Config: cfg,
	})
	cancel()
	<-done

	// Context cancellation (a signal) kills the program cleanly.
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
