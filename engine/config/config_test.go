package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvServerAddr, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Terrain.Seed != 101 || cfg.SpriteSize != 50 || cfg.ServerAddr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	t.Setenv(EnvServerAddr, "")
	path := filepath.Join(t.TempDir(), "townmap.json")
	body := `{"terrain": {"seed": 7, "octaves": 3}, "out_dir": "out"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Terrain.Seed != 7 || cfg.Terrain.Octaves != 3 {
		t.Fatalf("terrain not overlaid: %+v", cfg.Terrain)
	}
	if cfg.Terrain.Lacunarity != 2.05 {
		t.Fatalf("untouched field lost its default: %v", cfg.Terrain.Lacunarity)
	}
	if cfg.OutDir != "out" || cfg.SpriteSize != 50 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvServerAddr, "127.0.0.1:9000")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerAddr != "127.0.0.1:9000" {
		t.Fatalf("addr = %q", cfg.ServerAddr)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte(`{"sprite_size": 0}`), 0644)
	if _, err := Load(bad); err == nil {
		t.Fatal("zero sprite size should fail validation")
	}
}
