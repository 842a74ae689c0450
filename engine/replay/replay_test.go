package replay

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/1siamBot/townmap/engine/render"
)

func TestRecordAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.jsonl")
	rec, err := NewRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	rounds := []render.State{
		{Round: 0, Blue: render.Territory{Towns: []int{0}, Capital: 0}, Red: render.Territory{Towns: []int{15}, Capital: 15}},
		{Round: 1, Blue: render.Territory{Towns: []int{0, 1}, Capital: 0}, Red: render.Territory{Towns: []int{15}, Capital: 15}},
	}
	for _, s := range rounds {
		if err := rec.Record(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Rounds, rounds) {
		t.Fatalf("loaded %+v, want %+v", got.Rounds, rounds)
	}
	if s, ok := got.Round(1); !ok || len(s.Blue.Towns) != 2 {
		t.Fatalf("Round(1) = %+v, %v", s, ok)
	}
	if _, ok := got.Round(7); ok {
		t.Fatal("Round(7) should be missing")
	}
}

func TestDecodeMalformed(t *testing.T) {
	in := `{"round": 0, "blue": {"towns": [1], "capital": 1}, "red": {"capital": 0}}
{"round": 1, "blue": `
	if _, err := Decode(strings.NewReader(in)); err == nil {
		t.Fatal("truncated line should fail")
	}
}

func TestRecordOnLoadedReplayFails(t *testing.T) {
	r, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Record(render.State{}); err == nil {
		t.Fatal("loaded replay is read-only")
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
}
