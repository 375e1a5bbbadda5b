// Package api serves game sessions over HTTP and websockets.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/battlesnakeio/solo/config"
	"github.com/battlesnakeio/solo/controller"
	"github.com/battlesnakeio/solo/rules"
	"github.com/battlesnakeio/solo/worker"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	errBadRequest  = errors.New("api: malformed request")
	errRateLimited = errors.New("api: too many direction changes")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the http front of a controller.
type Server struct {
	hs   *http.Server
	ctrl *controller.Controller

	inputRate  rate.Limit
	inputBurst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Server listening on addr once WaitForExit is called.
func New(addr string, ctrl *controller.Controller) *Server {
	s := &Server{
		ctrl:       ctrl,
		inputRate:  config.InputRate,
		inputBurst: config.InputBurst,
		limiters:   map[string]*rate.Limiter{},
	}

	router := httprouter.New()
	router.POST("/games", s.createGame)
	router.GET("/games", s.listGames)
	router.GET("/games/:id", s.gameStatus)
	router.POST("/games/:id/start", s.startGame)
	router.POST("/games/:id/pause", s.pauseGame)
	router.POST("/games/:id/direction", s.setDirection)
	router.DELETE("/games/:id", s.endGame)
	router.GET("/socket/:id", s.watchGame)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "DELETE"},
	}).Handler(router)

	s.hs = &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// Handler returns the routed handler, cors included.
func (s *Server) Handler() http.Handler { return s.hs.Handler }

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() {
	log.WithField("addr", s.hs.Addr).Info("solo snake api listening")
	err := s.hs.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("error while listening")
	}
}

// Shutdown stops accepting requests and waits for the active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}

// CreateResponse is returned by POST /games.
type CreateResponse struct {
	ID string
}

// ListResponse is returned by GET /games.
type ListResponse struct {
	Games []string
}

// DirectionRequest is the body of POST /games/:id/direction.
type DirectionRequest struct {
	Direction string `json:"direction"`
}

// ClientMessage is read from websocket clients. Action is "start", "pause"
// or a direction name.
type ClientMessage struct {
	Action string `json:"action"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := s.ctrl.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CreateResponse{ID: id})
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ids, err := s.ctrl.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Games: ids})
}

func (s *Server) gameStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	g, err := s.ctrl.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

func (s *Server) startGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.command(w, r, ps, func(ctx context.Context, g *worker.Game) error {
		return g.Start(ctx)
	})
}

func (s *Server) pauseGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.command(w, r, ps, func(ctx context.Context, g *worker.Game) error {
		return g.TogglePause(ctx)
	})
}

func (s *Server) setDirection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req DirectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errBadRequest, err.Error()))
		return
	}
	dir, err := rules.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	s.command(w, r, ps, func(ctx context.Context, g *worker.Game) error {
		if !s.limiter(g).Allow() {
			return errRateLimited
		}
		return g.SetDirection(ctx, dir)
	})
}

func (s *Server) endGame(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := s.ctrl.End(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// command runs fn against the game named in the path and replies with the
// snapshot taken after it was applied.
func (s *Server) command(w http.ResponseWriter, r *http.Request, ps httprouter.Params, fn func(context.Context, *worker.Game) error) {
	g, err := s.ctrl.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := fn(r.Context(), g); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g.Snapshot())
}

// limiter returns the direction rate limiter of g. It is dropped once the
// game loop exits, however the game was ended.
func (s *Server) limiter(g *worker.Game) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[g.ID]
	if !ok {
		l = rate.NewLimiter(s.inputRate, s.inputBurst)
		s.limiters[g.ID] = l
		go func() {
			<-g.Done()
			s.mu.Lock()
			delete(s.limiters, g.ID)
			s.mu.Unlock()
		}()
	}
	return l
}

func statusFor(err error) int {
	switch errors.Cause(err) {
	case controller.ErrNotFound, worker.ErrStopped:
		return http.StatusNotFound
	case rules.ErrInvalidDirection, errBadRequest:
		return http.StatusBadRequest
	case errRateLimited:
		return http.StatusTooManyRequests
	case controller.ErrTooManyGames:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}
