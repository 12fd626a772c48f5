package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"starfield/internal/content"
	"starfield/internal/field"
	_ "starfield/internal/formations/galaxy"
	_ "starfield/internal/formations/lattice"
	_ "starfield/internal/formations/scatter"
	_ "starfield/internal/formations/timeline"
	"starfield/internal/server"
)

func main() {
	cfg := server.ConfigFromEnv()
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	store := content.NewStore(os.DirFS(cfg.ContentDir))
	types, err := store.Types()
	if err != nil {
		log.Fatalf("content dir %q: %v", cfg.ContentDir, err)
	}
	log.Printf("serving content types %v from %s", types, cfg.ContentDir)

	srv := server.New(cfg, store, field.DefaultParams())
	if err := srv.Router().Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
