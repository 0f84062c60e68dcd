package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Mshel/tetrad/internal/config"
	"github.com/Mshel/tetrad/internal/game"
	"github.com/Mshel/tetrad/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	debug := flag.Bool("debug", false, "write debug logs to a file in the temp dir")
	autoplay := flag.Bool("autoplay", false, "skip the menu and let the autopilot play")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the game, so logs only go to a file
	log.SetOutput(io.Discard)
	log.SetLevel(cfg.Level())
	if *debug {
		path := filepath.Join(os.TempDir(), "tetrad-debug.log")
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("error %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetLevel(log.DebugLevel)
	}

	gameManager, err := game.NewGameManager(game.DefaultConfig(), cfg.NewGenerator())
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	strategy, release, err := cfg.NewStrategy()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
	defer release()

	controller := ui.NewControllerModel(gameManager, strategy, cfg.FrameInterval, nil, 0, 0)
	if *autoplay {
		controller = controller.StartAutoplay()
	}

	log.Debug("Starting local game", "generator", cfg.Generator, "strategy", strategy.Name(), "autoplay", *autoplay)
	p := tea.NewProgram(controller, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}
}
