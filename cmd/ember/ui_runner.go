package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/driver"
	"ember/internal/pipeline"
	"ember/internal/ui"
)

type runOutcome struct {
	result *driver.Result
	err    error
}

// runFilesWithUI runs files behind a progress view drawn on out. Values are
// held back and written to opts.Out once the view has exited.
func runFilesWithUI(ctx context.Context, title string, files []string, opts driver.Options, out io.Writer) (*driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	valuesOut := opts.Out
	go func() {
		runOpts := opts
		runOpts.Progress = pipeline.ChannelSink{Ch: events}
		runOpts.Out = nil
		res, err := driver.RunFiles(ctx, files, runOpts)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы не блокировать драйвер
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if outcome.err == nil && outcome.result != nil && valuesOut != nil {
		for _, fr := range outcome.result.Files {
			if _, err := valuesOut.Write(fr.Output); err != nil {
				return outcome.result, err
			}
		}
	}
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
