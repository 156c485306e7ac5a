// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-select asks the user to choose one value from a list in the
// terminal and prints the choice to stdout, for use in shell scripts:
//
//	region=$(bureau-select --file regions.yaml --placeholder "Region")
//
// Options come from positional arguments, --file (JSON, JSONC, YAML or
// plain lines), or stdin. The select renders on stderr, so stdout
// carries only the chosen value. A dismissed select exits with code 1.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/selectkit/lib/clierr"
	"github.com/bureau-foundation/selectkit/lib/config"
	"github.com/bureau-foundation/selectkit/lib/optionfile"
	"github.com/bureau-foundation/selectkit/lib/statefile"
	"github.com/bureau-foundation/selectkit/lib/tui"
	"github.com/bureau-foundation/selectkit/lib/version"
)

func main() {
	err := run()
	code, printable := clierr.ExitCode(err)
	if printable {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(code)
}

// flags holds the parsed command line.
type flags struct {
	file        string
	configPath  string
	value       string
	query       string
	statePath   string
	placeholder string
	prompt      string
	position    string
	rtl         bool
	noColor     bool
	logOutput   string
}

func run() error {
	var parsed flags

	flagSet := pflag.NewFlagSet("bureau-select", pflag.ContinueOnError)
	flagSet.StringVarP(&parsed.file, "file", "f", "", "read options from a .json, .jsonc, .yaml or plain text file")
	flagSet.StringVar(&parsed.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&parsed.value, "value", "", "initially selected value")
	flagSet.StringVarP(&parsed.query, "query", "q", "", "select the option best matching this fuzzy query")
	flagSet.StringVar(&parsed.statePath, "state", "", "remember the chosen value in this file and start on it next time")
	flagSet.StringVar(&parsed.placeholder, "placeholder", "", "trigger text while nothing is selected")
	flagSet.StringVarP(&parsed.prompt, "prompt", "p", "", "header line above the select")
	flagSet.StringVar(&parsed.position, "position", "", "popup placement: item-aligned or popper")
	flagSet.BoolVar(&parsed.rtl, "rtl", false, "lay the select out right-to-left")
	flagSet.BoolVar(&parsed.noColor, "no-color", false, "render without colors")
	flagSet.StringVar(&parsed.logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Fprint(os.Stdout, "bureau-select")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return clierr.Validation("%w", err)
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return clierr.Validation("stderr is not a terminal").
			WithHint("bureau-select draws on stderr; run it from an interactive shell.")
	}

	cfg, err := loadConfig(parsed.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, parsed); err != nil {
		return err
	}

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	options, origin, err := loadOptions(parsed.file, flagSet.Args(), os.Stdin, stdinIsTerminal)
	if err != nil {
		return err
	}
	warnings, err := validateOptions(options)
	if err != nil {
		return err
	}

	statePath := parsed.statePath
	if statePath == "" {
		statePath = cfg.State.Path
	}
	var saved statefile.State
	if statePath != "" {
		saved, err = statefile.Load(statePath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring state file: %v", err))
		}
	}

	initial := initialValue(options, parsed.value, parsed.query, saved)
	selectOptions, err := dropdownOptions(cfg)
	if err != nil {
		return err
	}
	selectOptions.DefaultValue = initial

	renderer := lipgloss.NewRenderer(os.Stderr)
	if parsed.noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	lipgloss.SetDefaultRenderer(renderer)

	theme, unknown := tui.DefaultTheme.WithOverrides(cfg.Theme)
	for _, name := range unknown {
		warnings = append(warnings, fmt.Sprintf("unknown theme color %q", name))
	}

	tuiHandler := tui.NewTUILogHandler(slog.LevelWarn)
	var handler slog.Handler = tuiHandler
	if parsed.logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(parsed.logOutput)
		if err != nil {
			return clierr.Validation("cannot open log file %s: %w", parsed.logOutput, err)
		}
		defer closeFile()
		handler = fanoutHandler{tuiHandler, fileHandler}
	}
	logger := slog.New(handler).With("options", origin)
	selectOptions.Logger = logger

	picker, err := tui.NewPicker(tui.PickerConfig{
		Prompt:  parsed.prompt,
		Options: pickerOptions(options),
		Select:  selectOptions,
		Theme:   theme,
	})
	if err != nil {
		return clierr.Validation("%w", err)
	}

	programOptions := []tea.ProgramOption{
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	}
	if !stdinIsTerminal {
		// Options arrived on stdin; keys come from the controlling
		// terminal instead.
		programOptions = append(programOptions, tea.WithInputTTY())
	}
	program := tea.NewProgram(picker, programOptions...)
	picker.Attach(program)
	tuiHandler.SetProgram(program)

	for _, warning := range warnings {
		logger.Warn(warning)
	}

	if _, err := program.Run(); err != nil {
		return clierr.Internal("running the select: %w", err)
	}

	value, submitted := picker.Result()
	if !submitted {
		return &clierr.ExitError{Code: 1}
	}
	fmt.Fprintln(os.Stdout, value)

	if statePath != "" {
		state := statefile.State{Value: value, Source: optionfile.Fingerprint(options), SavedAt: time.Now().UTC()}
		if err := statefile.Save(statePath, state); err != nil {
			return clierr.Internal("saving state: %w", err)
		}
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `bureau-select: choose one value in the terminal.

Options come from the arguments, from --file, or one per line on
stdin. The select is drawn on stderr; the chosen value is printed to
stdout. Exit code 1 means the select was dismissed without a choice.

Keys: enter/space open and choose, arrows and home/end move, letters
jump to matching options, esc closes (and cancels when closed),
ctrl+s accepts the current value.

Usage:
  bureau-select [flags] [option...]

Examples:
  # Choose from arguments
  bureau-select apple banana cherry

  # Choose from a YAML file, starting on the closest match to "fra"
  bureau-select --file regions.yaml --query fra

  # Remember the last choice between runs
  ls | bureau-select --state ~/.local/state/selectkit/dir.cbor

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
