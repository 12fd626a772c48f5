//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"starfield/internal/app"
	"starfield/internal/core"
	_ "starfield/internal/formations/galaxy"
	_ "starfield/internal/formations/lattice"
	_ "starfield/internal/formations/scatter"
	_ "starfield/internal/formations/timeline"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if _, ok := core.Recipes()[cfg.Scene]; !ok {
		log.Printf("no recipe for scene %q, using the default formation", cfg.Scene)
	}

	game := app.New(cfg)

	ebiten.SetWindowTitle("starfield")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
