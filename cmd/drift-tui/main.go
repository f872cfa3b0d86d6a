package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/ingyamilmolinar/drift/core/surface"
	"github.com/ingyamilmolinar/drift/internal/config"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
	"github.com/ingyamilmolinar/drift/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "drift-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	logFile := flag.String("logfile", "", "write logs here; the terminal is busy drawing")
	devSkip := flag.Bool("dev-skip", false, "skip activation")
	flag.Parse()

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	if *devSkip {
		cfg.DevSkipActivation = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger := game_log.New(out, game_log.LevelFromString(cfg.LogLevel))

	app := surface.NewApp(cfg, logger)
	defer app.Close()
	app.Start()

	interval := time.Second / time.Duration(cfg.TPS)
	m := tui.NewModel(app, cols, rows, interval)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
