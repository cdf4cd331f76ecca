package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-gravity/audio"
	"github.com/lixenwraith/vi-gravity/scene"
	"github.com/lixenwraith/vi-gravity/sim"
	"github.com/lixenwraith/vi-gravity/status"
)

var (
	sceneFlag   = flag.String("scene", "", "Scene file (YAML), empty for the built-in scene")
	debugFlag   = flag.Bool("debug", false, "Write debug log to logs/")
	workersFlag = flag.Int("workers", 0, "Force pass goroutines, 0 keeps the scene value")
	muteFlag    = flag.Bool("mute", false, "Disable wall sounds")
	fpsFlag     = flag.Int("fps", 60, "Frames per second")
	scaleFlag   = flag.Float64("scale", 5, "World units per terminal column")
)

func loadScene() (scene.Config, error) {
	cfg := scene.DefaultConfig()
	if *sceneFlag != "" {
		var err error
		if cfg, err = scene.Load(*sceneFlag); err != nil {
			return cfg, err
		}
	}
	scene.ApplyEnv(&cfg)
	if *workersFlag > 0 {
		cfg.Workers = *workersFlag
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadScene()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}
	if *fpsFlag <= 0 || *scaleFlag <= 0 {
		fmt.Fprintln(os.Stderr, "fps and scale must be positive")
		os.Exit(1)
	}

	metrics := status.NewRegistry()
	simulation, err := sim.New(cfg, metrics)
	if simulation == nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		log.Printf("scene %q: %v", cfg.Name, err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRAVITY-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	sb := newSandbox(screen, simulation, metrics, *scaleFlag, time.Second/time.Duration(*fpsFlag))

	audioCfg := audio.LoadConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	player := audio.NewPlayer(audioCfg)
	if err := player.Start(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Printf("Audio initialization failed: %v", err)
	} else {
		defer player.Stop()
		simulation.SetContactListener(player)
		sb.audio = player
	}

	log.Printf("scene %q: %d bodies, G=%g, elasticity=%g, workers=%d",
		cfg.Name, len(simulation.Bodies()), cfg.GravitationalConstant, cfg.WallElasticity, cfg.Workers)

	sb.run()
}
