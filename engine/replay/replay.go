// Package replay records and plays back per-round ownership snapshots as
// JSON lines.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/townmap/engine/render"
)

// Replay records and plays back round snapshots
type Replay struct {
	Rounds []render.State
	file   *os.File
	writer *bufio.Writer
	enc    *json.Encoder
}

// NewRecorder creates a replay file for recording
func NewRecorder(path string) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	w := bufio.NewWriter(f)
	return &Replay{
		file:   f,
		writer: w,
		enc:    json.NewEncoder(w),
	}, nil
}

// Record appends one round
func (r *Replay) Record(s render.State) error {
	if r.enc == nil {
		return errors.New("replay: not recording")
	}
	r.Rounds = append(r.Rounds, s)
	return r.enc.Encode(s)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	if r.writer != nil {
		if err := r.writer.Flush(); err != nil {
			r.file.Close()
			return err
		}
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Load reads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads JSON-lines snapshots until EOF. A malformed line is an error.
func Decode(rd io.Reader) (*Replay, error) {
	replay := &Replay{}
	dec := json.NewDecoder(bufio.NewReader(rd))
	for {
		var s render.State
		err := dec.Decode(&s)
		if errors.Is(err, io.EOF) {
			return replay, nil
		}
		if err != nil {
			return nil, fmt.Errorf("replay round %d: %w", len(replay.Rounds), err)
		}
		replay.Rounds = append(replay.Rounds, s)
	}
}

// Round returns the snapshot recorded for a round number.
func (r *Replay) Round(n int) (render.State, bool) {
	for _, s := range r.Rounds {
		if s.Round == n {
			return s, true
		}
	}
	return render.State{}, false
}
