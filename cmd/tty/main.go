package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"starfield/internal/core"
	"starfield/internal/field"
	_ "starfield/internal/formations/galaxy"
	_ "starfield/internal/formations/lattice"
	_ "starfield/internal/formations/scatter"
	_ "starfield/internal/formations/timeline"
	"starfield/internal/term"
)

func main() {
	var (
		scene   = flag.String("scene", core.SceneHome, "scene to open with")
		tps     = flag.Int("tps", 30, "ticks per second")
		seed    = flag.Int64("seed", 42, "seed for formation generation")
		count   = flag.Int("count", 0, "particle count override (0 picks by terminal size)")
		lensing = flag.Bool("lensing", false, "enable the black hole lensing effect")
		logPath = flag.String("log", "", "write engine logs to this file")
	)
	flag.Parse()

	// The terminal is owned by tcell; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	params := field.DefaultParams()
	params.Seed = *seed
	params.Count = *count
	params.Lensing = *lensing

	session := term.NewSession(screen, params, runtime.NumCPU(), *tps)
	session.SetLogger(log.Default())
	session.Start(*scene)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatal(err)
	}
}
