package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/salescope/salescope/internal/dataset"
)

// Run starts the interactive dashboard over a loaded dataset and blocks
// until the user quits or the context is canceled.
func Run(ctx context.Context, data *dataset.Dataset) error {
	if data == nil {
		return fmt.Errorf("dataset is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cleanupTerminal := func() {
		// Best-effort restore if bubbletea exits uncleanly.
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	program := tea.NewProgram(New(data), tea.WithAltScreen(), tea.WithContext(ctx))

	go func() {
		select {
		case <-sigChan:
			program.Quit()
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
