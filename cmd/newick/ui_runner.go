package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"newick/internal/driver"
	"newick/internal/source"
	"newick/internal/ui"
)

type checkOutcome struct {
	results []driver.ParseDirResult
	err     error
}

// runCheckWithUI parses files in the background while a Bubble Tea program
// renders driver progress events.
func runCheckWithUI(ctx context.Context, title string, fs *source.FileSet, files []string, opts driver.Options) ([]driver.ParseDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.ParseFiles(ctx, fs, files, optsCopy)
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// после ctrl+c модель больше не читает канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
