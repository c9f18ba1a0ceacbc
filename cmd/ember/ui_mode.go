package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting for the progress view of `run`.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on", "true":
		return uiOn, nil
	case "off", "false":
		return uiOff, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: в auto прогресс рисуется только для нескольких файлов и
// только когда stdout является терминалом.
func shouldUseTUI(mode uiMode, files int) bool {
	return wantsTUI(mode, files, isTerminal(os.Stdout))
}

func wantsTUI(mode uiMode, files int, tty bool) bool {
	switch mode {
	case uiOn:
		return files > 0
	case uiOff:
		return false
	}
	return files > 1 && tty
}
