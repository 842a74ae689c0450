package render

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/1siamBot/townmap/engine/towns"
)

// State is the ownership snapshot the game hands over once per round.
type State struct {
	Round int       `json:"round"`
	Blue  Territory `json:"blue"`
	Red   Territory `json:"red"`
}

func (t Territory) validate(team string) error {
	for _, i := range t.Towns {
		if !towns.Valid(i) {
			return fmt.Errorf("%s town %d: %w", team, i, towns.ErrUnknownTown)
		}
	}
	if !towns.Valid(t.Capital) {
		return fmt.Errorf("%s capital %d: %w", team, t.Capital, towns.ErrUnknownTown)
	}
	return nil
}

func (s State) validate() error {
	if err := s.Blue.validate("blue"); err != nil {
		return err
	}
	return s.Red.validate("red")
}

// LoadState reads a State from a JSON file.
func LoadState(path string) (State, error) {
	var s State
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse state %s: %w", path, err)
	}
	return s, s.validate()
}

// ParseTowns parses a comma separated index list such as "0,1,4".
// Blank input is an empty list.
func ParseTowns(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("town list %q: %w", s, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// RandomSplit deals the 16 towns between the teams and picks a capital for
// each, for previews without a game engine attached.
func RandomSplit(rng *rand.Rand) State {
	perm := rng.Perm(towns.Count)
	cut := 1 + rng.Intn(towns.Count-1)
	blue, red := slices.Clone(perm[:cut]), slices.Clone(perm[cut:])
	return State{
		Blue: Territory{Towns: blue, Capital: blue[rng.Intn(len(blue))]},
		Red:  Territory{Towns: red, Capital: red[rng.Intn(len(red))]},
	}
}

// Claim toggles town i in own. A newly claimed town is taken from other, and
// becomes own's capital if own had none among its towns. Releasing the
// capital hands it to the first remaining town.
func Claim(own, other *Territory, i int) {
	if idx := slices.Index(own.Towns, i); idx >= 0 {
		own.Towns = slices.Delete(own.Towns, idx, idx+1)
		if own.Capital == i && len(own.Towns) > 0 {
			own.Capital = own.Towns[0]
		}
		return
	}
	own.Towns = append(own.Towns, i)
	if idx := slices.Index(other.Towns, i); idx >= 0 {
		other.Towns = slices.Delete(other.Towns, idx, idx+1)
		if other.Capital == i && len(other.Towns) > 0 {
			other.Capital = other.Towns[0]
		}
	}
	if !slices.Contains(own.Towns, own.Capital) {
		own.Capital = i
	}
}
