// Command render draws match frames as PNG: one frame from an ownership
// snapshot, or every round of a replay file.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"path/filepath"

	"github.com/1siamBot/townmap/engine/config"
	"github.com/1siamBot/townmap/engine/frameio"
	"github.com/1siamBot/townmap/engine/render"
	"github.com/1siamBot/townmap/engine/replay"
	"github.com/1siamBot/townmap/engine/towns"
)

func main() {
	var (
		cfgPath     string
		statePath   string
		blue, red   string
		blueCapital int
		redCapital  int
		round       int
		out         string
		seed        int64
		random      bool
		replayPath  string
	)
	flag.StringVar(&cfgPath, "config", "", "JSON config file (optional)")
	flag.StringVar(&statePath, "state", "", "JSON ownership snapshot; overrides -blue/-red")
	flag.StringVar(&blue, "blue", "0", "comma separated blue town indices")
	flag.IntVar(&blueCapital, "blue-capital", 0, "blue capital town index")
	flag.StringVar(&red, "red", "15", "comma separated red town indices")
	flag.IntVar(&redCapital, "red-capital", 15, "red capital town index")
	flag.IntVar(&round, "round", 0, "round number used for the output file name")
	flag.StringVar(&out, "out", "", "output PNG path (default <out_dir>/<round>.png)")
	flag.Int64Var(&seed, "layout-seed", 0, "town layout seed (0 = config or time)")
	flag.BoolVar(&random, "random", false, "deal towns randomly instead of using -blue/-red")
	flag.StringVar(&replayPath, "replay", "", "JSON-lines replay; renders every round to <out_dir>/<round>.png")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if seed != 0 {
		cfg.LayoutSeed = seed
	}

	var rounds []render.State
	if replayPath != "" {
		rp, err := replay.Load(replayPath)
		if err != nil {
			log.Fatal(err)
		}
		rounds = rp.Rounds
		out = ""
	} else {
		state, err := loadState(statePath, blue, blueCapital, red, redCapital, round, random)
		if err != nil {
			log.Fatal(err)
		}
		rounds = []render.State{state}
	}

	r, err := render.Init(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	sprite, err := loadSprite(cfg)
	if err != nil {
		log.Fatal(err)
	}

	for _, state := range rounds {
		if err := r.RenderState(state); err != nil {
			log.Fatalf("round %d: %v", state.Round, err)
		}
		img := frameio.Compose(r.Frame().Image(), r.ProjectedTowns(), sprite)

		path := out
		if path == "" {
			path = frameio.RoundPath(cfg.OutDir, state.Round)
		}
		if err := frameio.SavePNG(path, img); err != nil {
			log.Fatal(err)
		}
		log.Printf("Saved round %d to %s", state.Round, filepath.Clean(path))
	}
}

func loadState(path, blue string, blueCapital int, red string, redCapital, round int, random bool) (render.State, error) {
	if path != "" {
		return render.LoadState(path)
	}
	if random {
		s := render.RandomSplit(towns.NewSource())
		s.Round = round
		return s, nil
	}
	b, err := render.ParseTowns(blue)
	if err != nil {
		return render.State{}, err
	}
	rd, err := render.ParseTowns(red)
	if err != nil {
		return render.State{}, err
	}
	return render.State{
		Round: round,
		Blue:  render.Territory{Towns: b, Capital: blueCapital},
		Red:   render.Territory{Towns: rd, Capital: redCapital},
	}, nil
}

func loadSprite(cfg *config.Config) (image.Image, error) {
	if cfg.SpritePath == "" {
		return frameio.DefaultSprite(cfg.SpriteSize), nil
	}
	return frameio.LoadSprite(cfg.SpritePath, cfg.SpriteSize)
}
