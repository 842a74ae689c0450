// Package server exposes rendered frames over HTTP for previewing a match.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/1siamBot/townmap/engine/frameio"
	"github.com/1siamBot/townmap/engine/render"
	"github.com/1siamBot/townmap/engine/towns"
)

// Server serializes renders; the renderer owns a single frame buffer.
type Server struct {
	mu       sync.Mutex
	renderer *render.Renderer
	sprite   image.Image
}

// New creates a Server. sprite may be nil to skip town overlays.
func New(r *render.Renderer, sprite image.Image) *Server {
	return &Server{renderer: r, sprite: sprite}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/frame.png", s.GetFrame)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/towns", s.ListTowns)
		r.Get("/towns/{id}", s.GetTown)
		r.Post("/render", s.PostRender)
	})
	return r
}

// townView is a town as the API reports it.
type townView struct {
	ID        int          `json:"id"`
	Anchor    towns.Anchor `json:"anchor"`
	Projected towns.Anchor `json:"projected"`
}

func (s *Server) townViews() []townView {
	anchors := s.renderer.Layout().Anchors()
	projected := s.renderer.ProjectedTowns()
	out := make([]townView, len(anchors))
	for i, a := range anchors {
		p := projected[i]
		out[i] = townView{ID: i, Anchor: a, Projected: towns.Anchor{X: p.X, Y: p.Y}}
	}
	return out
}

// ListTowns handles GET /api/towns
func (s *Server) ListTowns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.townViews())
}

// GetTown handles GET /api/towns/{id}
func (s *Server) GetTown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid town id")
		return
	}
	if !towns.Valid(id) {
		respondError(w, http.StatusNotFound, fmt.Errorf("town %d: %w", id, towns.ErrUnknownTown).Error())
		return
	}
	respondJSON(w, http.StatusOK, s.townViews()[id])
}

// GetFrame handles GET /frame.png?blue=0,1&blue_capital=0&red=15&red_capital=15
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	state, err := stateFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeFrame(w, state)
}

// PostRender handles POST /api/render with a JSON render.State body
func (s *Server) PostRender(w http.ResponseWriter, r *http.Request) {
	var state render.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid state body")
		return
	}
	s.writeFrame(w, state)
}

func (s *Server) writeFrame(w http.ResponseWriter, state render.State) {
	s.mu.Lock()
	err := s.renderer.RenderState(state)
	var img *image.RGBA
	if err == nil {
		img = frameio.Compose(s.renderer.Frame().Image(), s.renderer.ProjectedTowns(), s.sprite)
	}
	s.mu.Unlock()

	if errors.Is(err, towns.ErrUnknownTown) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := frameio.EncodePNG(w, img); err != nil {
		log.Printf("Error writing frame: %v", err)
	}
}

func stateFromQuery(r *http.Request) (render.State, error) {
	var s render.State
	q := r.URL.Query()
	var err error
	if s.Blue.Towns, err = render.ParseTowns(q.Get("blue")); err != nil {
		return s, err
	}
	if s.Red.Towns, err = render.ParseTowns(q.Get("red")); err != nil {
		return s, err
	}
	if s.Blue.Capital, err = capitalParam(q.Get("blue_capital"), s.Blue.Towns); err != nil {
		return s, err
	}
	if s.Red.Capital, err = capitalParam(q.Get("red_capital"), s.Red.Towns); err != nil {
		return s, err
	}
	return s, nil
}

// capitalParam defaults to the first owned town, or town 0 for an empty team.
func capitalParam(v string, owned []int) (int, error) {
	if v == "" {
		if len(owned) > 0 {
			return owned[0], nil
		}
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid capital " + strconv.Quote(v))
	}
	return n, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
