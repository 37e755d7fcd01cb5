// Package api serves running games to spectators and remote controllers.
//
//	GET  /games/:id          game settings, status and the latest frame
//	GET  /games/:id/frames   frame history, paged with offset and limit
//	POST /games/:id/move     queue a direction for the next tick
//	GET  /socket/:id         websocket stream of frames as JSON
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/battlesnakeio/snake/controller"
	"github.com/battlesnakeio/snake/game"
	"github.com/battlesnakeio/snake/input"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultFrameLimit = 100
	maxFrameLimit     = 1000
)

// Server is the spectator http server.
type Server struct {
	hs    *http.Server
	store controller.Store

	// PollInterval is how often a socket checks the store for new frames.
	PollInterval time.Duration

	mu     sync.RWMutex
	inputs map[string]*input.Queue
}

// New creates an api server listening on addr and reading from store.
func New(addr string, store controller.Store) *Server {
	s := &Server{
		store:        store,
		PollInterval: 50 * time.Millisecond,
		inputs:       map[string]*input.Queue{},
	}
	router := httprouter.New()
	router.GET("/games/:id", s.getGame)
	router.GET("/games/:id/frames", s.listFrames)
	router.POST("/games/:id/move", s.postMove)
	router.GET("/socket/:id", s.framesSocket)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(router),
	}
	return s
}

// Handler returns the http handler of the server.
func (s *Server) Handler() http.Handler {
	return s.hs.Handler
}

// Steer lets POST /games/:id/move push into q.
func (s *Server) Steer(id string, q *input.Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inputs[id] = q
}

// WaitForExit starts up the server and blocks until the server shuts down.
func (s *Server) WaitForExit() error {
	err := s.hs.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server, waiting for open requests up to ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

// GameResponse is the body of GET /games/:id.
type GameResponse struct {
	Game      *game.Game      `json:"game"`
	LastFrame *game.GameFrame `json:"lastFrame"`
}

// FramesResponse is the body of GET /games/:id/frames.
type FramesResponse struct {
	Count  int               `json:"count"`
	Frames []*game.GameFrame `json:"frames"`
}

// MoveRequest is the body of POST /games/:id/move.
type MoveRequest struct {
	Move string `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	g, err := s.store.GetGame(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	frame, err := s.store.LastGameFrame(r.Context(), id)
	if err != nil && err != controller.ErrNotFound {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &GameResponse{Game: g, LastFrame: frame})
}

func (s *Server) listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "invalid offset"})
		return
	}
	limit, err := queryInt(r, "limit", defaultFrameLimit)
	if err != nil || limit <= 0 {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "invalid limit"})
		return
	}
	if limit > maxFrameLimit {
		limit = maxFrameLimit
	}

	frames, err := s.store.ListGameFrames(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &FramesResponse{Count: len(frames), Frames: frames})
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	s.mu.RLock()
	q, ok := s.inputs[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, controller.ErrNotFound)
		return
	}

	req := &MoveRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "invalid json"})
		return
	}
	d, err := game.ParseDirection(req.Move)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}
	q.Push(d)
	log.WithField("GameID", id).WithField("Move", d).Debug("move queued")
	w.WriteHeader(http.StatusAccepted)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeError(w http.ResponseWriter, err error) {
	if err == controller.ErrNotFound {
		writeJSON(w, http.StatusNotFound, &errorResponse{Error: err.Error()})
		return
	}
	log.WithError(err).Error("api request failed")
	writeJSON(w, http.StatusInternalServerError, &errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("unable to write response")
	}
}
