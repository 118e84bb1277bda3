// Package web serves the shared snake over HTTP: an HTML page with the current
// frame, a vote endpoint per direction, and a websocket frame stream.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdsnake/internal/core"
	"github.com/vovakirdan/crowdsnake/internal/driver"
	"github.com/vovakirdan/crowdsnake/internal/multiplayer"
)

//go:embed templates/snake.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/snake.html"))

// Voter accepts direction votes. Implemented by driver.Driver.
type Voter interface {
	Submit(d core.Direction) error
}

// FrameSource exposes the last settled frame. Implemented by driver.Driver.
type FrameSource interface {
	Frame() driver.Frame
}

// Config holds the HTTP front end settings.
type Config struct {
	Address string

	// EventBuffer is the per-websocket event buffer size.
	EventBuffer int
}

// Server is the HTTP front end.
type Server struct {
	config Config
	voter  Voter
	frames FrameSource
	hub    *multiplayer.Hub
	logger *log.Logger
	http   *http.Server
}

// NewServer creates the front end. hub may be nil, in which case the
// websocket endpoint is not registered.
func NewServer(cfg Config, voter Voter, frames FrameSource, hub *multiplayer.Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.EventBuffer < 1 {
		cfg.EventBuffer = 8
	}

	s := &Server{
		config: cfg,
		voter:  voter,
		frames: frames,
		hub:    hub,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /snake", s.handlePage)
	mux.HandleFunc("GET /snake/frame", s.handleFrame)
	mux.HandleFunc("POST /snake/{direction}", s.handleVote)
	if s.hub != nil {
		mux.HandleFunc("GET /snake/ws", s.handleStream)
	}
	return mux
}

// ListenAndServe serves until Shutdown is called. A closed server is not an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Serve accepts connections on l. Used by tests and callers that bind early.
func (s *Server) Serve(l net.Listener) error {
	if err := s.http.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server. Open websockets are closed when
// their viewers receive the driver's shutdown event or the client leaves.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.config.Address
}

type pageData struct {
	Session    string
	Tick       uint64
	Length     int
	FruitEaten int
	Frame      string
	Directions []string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	f := s.frames.Frame()
	data := pageData{
		Session:    shortID(f.SessionID),
		Tick:       f.Snapshot.Tick,
		Length:     f.Snapshot.Length,
		FruitEaten: f.Snapshot.FruitEaten,
		Frame:      f.Text,
	}
	for _, d := range core.Directions {
		data.Directions = append(data.Directions, d.String())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("cannot render page", "err", err)
	}
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.frames.Frame().Text))
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	dir, err := core.ParseDirection(r.PathValue("direction"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.voter.Submit(dir); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func shortID(id multiplayer.SessionID) string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
