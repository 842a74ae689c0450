// Command viewer shows the rendered match in a window and lets towns be
// reassigned by clicking them.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/1siamBot/townmap/engine/config"
	"github.com/1siamBot/townmap/engine/frameio"
	"github.com/1siamBot/townmap/engine/input"
	"github.com/1siamBot/townmap/engine/render"
	"github.com/1siamBot/townmap/engine/replay"
	"github.com/1siamBot/townmap/engine/surface"
	"github.com/1siamBot/townmap/engine/towns"
)

const helpText = "LMB blue  RMB red  B/R capital  N deal  S save  C copy path"

// Viewer implements ebiten.Game
type Viewer struct {
	cfg      *config.Config
	renderer *render.Renderer
	sprite   image.Image
	input    *input.InputState
	state    render.State
	recorder *replay.Replay // nil unless -record

	frame     *ebiten.Image
	dirty     bool
	hover     int
	lastSaved string
	status    string
}

func NewViewer(cfg *config.Config, r *render.Renderer, sprite image.Image, state render.State) *Viewer {
	return &Viewer{
		cfg:      cfg,
		renderer: r,
		sprite:   sprite,
		input:    input.NewInputState(),
		state:    state,
		frame:    ebiten.NewImage(surface.Size, surface.Size),
		dirty:    true,
		hover:    -1,
	}
}

func (v *Viewer) Update() error {
	v.input.Update()
	v.hover = v.renderer.TownAt(v.input.MouseX, v.input.MouseY)

	if v.hover >= 0 {
		switch {
		case v.input.LeftJustPressed:
			render.Claim(&v.state.Blue, &v.state.Red, v.hover)
			v.dirty = true
		case v.input.RightJustPressed:
			render.Claim(&v.state.Red, &v.state.Blue, v.hover)
			v.dirty = true
		case v.input.IsKeyJustPressed(ebiten.KeyB):
			v.state.Blue.Capital = v.hover
			v.dirty = true
		case v.input.IsKeyJustPressed(ebiten.KeyR):
			v.state.Red.Capital = v.hover
			v.dirty = true
		}
	}

	if v.input.IsKeyJustPressed(ebiten.KeyN) {
		round := v.state.Round
		v.state = render.RandomSplit(towns.NewSource())
		v.state.Round = round + 1
		v.dirty = true
	}
	if v.input.IsKeyJustPressed(ebiten.KeyS) {
		v.save()
	}
	if v.input.IsKeyJustPressed(ebiten.KeyC) && v.lastSaved != "" {
		if err := clipboard.WriteAll(v.lastSaved); err != nil {
			v.status = "clipboard: " + err.Error()
		} else {
			v.status = "copied " + v.lastSaved
		}
	}
	if v.input.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if v.dirty {
		v.redraw()
	}
	return nil
}

func (v *Viewer) redraw() {
	v.dirty = false
	if err := v.renderer.RenderState(v.state); err != nil {
		v.status = err.Error()
		return
	}
	img := frameio.Compose(v.renderer.Frame().Image(), v.renderer.ProjectedTowns(), v.sprite)
	v.frame.WritePixels(img.Pix)
}

func (v *Viewer) save() {
	path := frameio.RoundPath(v.cfg.OutDir, v.state.Round)
	img := frameio.Compose(v.renderer.Frame().Image(), v.renderer.ProjectedTowns(), v.sprite)
	if err := frameio.SavePNG(path, img); err != nil {
		log.Printf("Save failed: %v", err)
		v.status = "save failed"
		return
	}
	log.Printf("Saved to %s", path)
	if v.recorder != nil {
		if err := v.recorder.Record(v.state); err != nil {
			log.Printf("Record failed: %v", err)
		}
	}
	v.lastSaved = path
	v.status = "saved " + path
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.DrawImage(v.frame, nil)

	info := fmt.Sprintf("round %d  blue %v cap %d  red %v cap %d\n%s",
		v.state.Round, v.state.Blue.Towns, v.state.Blue.Capital,
		v.state.Red.Towns, v.state.Red.Capital, helpText)
	if v.hover >= 0 {
		info += fmt.Sprintf("\ntown %d", v.hover)
	}
	if v.status != "" {
		info += "\n" + v.status
	}
	ebitenutil.DebugPrint(screen, info)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return surface.Size, surface.Size
}

func main() {
	cfgPath := flag.String("config", "", "JSON config file (optional)")
	statePath := flag.String("state", "", "JSON ownership snapshot (default: random deal)")
	recordPath := flag.String("record", "", "append every saved round to this JSON-lines replay")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	state := render.RandomSplit(towns.NewSource())
	if *statePath != "" {
		if state, err = render.LoadState(*statePath); err != nil {
			log.Fatal(err)
		}
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

	ebiten.SetWindowSize(surface.Size, surface.Size)
	ebiten.SetWindowTitle("Town Map")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	v := NewViewer(cfg, r, sprite, state)
	if *recordPath != "" {
		if v.recorder, err = replay.NewRecorder(*recordPath); err != nil {
			log.Fatal(err)
		}
		defer v.recorder.Close()
	}

	if err := ebiten.RunGame(v); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
