package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/surface"
	"github.com/ingyamilmolinar/drift/internal/config"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
	"github.com/ingyamilmolinar/drift/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	logLevel := flag.String("log", "", "log level: DEBUG, INFO, WARN, ERROR, NONE")
	devSkip := flag.Bool("dev-skip", false, "skip activation when no host is present")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		log.Fatal(err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *devSkip {
		cfg.DevSkipActivation = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := game_log.New(os.Stderr, game_log.LevelFromString(cfg.LogLevel))
	app := surface.NewApp(cfg, logger)
	defer app.Close()
	app.Start()

	ebiten.SetTPS(cfg.TPS)
	g := ui.New(app, logger, cfg.Width, cfg.Height)

	// Window settings are ignored inside the host web view
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("DRIFT")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
