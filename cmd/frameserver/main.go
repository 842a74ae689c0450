// Command frameserver serves rendered frames over HTTP.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"net/http"

	"github.com/1siamBot/townmap/engine/config"
	"github.com/1siamBot/townmap/engine/frameio"
	"github.com/1siamBot/townmap/engine/render"
	"github.com/1siamBot/townmap/engine/server"
)

func main() {
	cfgPath := flag.String("config", "", "JSON config file (optional)")
	addr := flag.String("addr", "", "listen address (overrides config and TOWNMAP_ADDR)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}

	r, err := render.Init(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	var sprite image.Image = frameio.DefaultSprite(cfg.SpriteSize)
	if cfg.SpritePath != "" {
		if sprite, err = frameio.LoadSprite(cfg.SpritePath, cfg.SpriteSize); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("Serving frames on %s", cfg.ServerAddr)
	if err := http.ListenAndServe(cfg.ServerAddr, server.New(r, sprite).Routes()); err != nil {
		log.Fatal(err)
	}
}
