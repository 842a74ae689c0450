package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/1siamBot/townmap/engine/frameio"
)

func main() {
	dir := flag.String("dir", "assets", "output directory")
	size := flag.Int("size", 50, "sprite edge in pixels")
	force := flag.Bool("force", false, "overwrite an existing sprite")
	flag.Parse()

	path := filepath.Join(*dir, "town.png")
	// Don't overwrite existing
	if _, err := os.Stat(path); err == nil && !*force {
		fmt.Printf("%s exists, skipping (use -force)\n", path)
		return
	}
	if err := frameio.SavePNG(path, frameio.DefaultSprite(*size)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d)\n", path, *size, *size)
}
