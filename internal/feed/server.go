package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"holdpress/internal/core/holdloop"
	"holdpress/internal/logging"

	"github.com/gorilla/websocket"
)

// envelope is the wire format of every feed frame.
type envelope struct {
	Type string      `json:"type"`
	Ts   *time.Time  `json:"ts,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

// gestureData is the `data` payload of a gesture event frame.
type gestureData struct {
	Phase     string  `json:"phase,omitempty"`
	Outcome   string  `json:"outcome,omitempty"`
	ElapsedMS int64   `json:"elapsed_ms"`
	Scale     float64 `json:"scale"`
	Fade      float64 `json:"fade"`
	ColorMix  float64 `json:"color_mix"`
	Value     float64 `json:"value"`
	Message   string  `json:"message,omitempty"`
}

// Encode serializes a hold loop event as a feed frame.
func Encode(event holdloop.Event) ([]byte, error) {
	data := gestureData{
		Phase:     string(event.Phase),
		ElapsedMS: event.Elapsed.Milliseconds(),
		Scale:     event.Snapshot.Scale,
		Fade:      event.Snapshot.Fade,
		ColorMix:  event.Snapshot.ColorMix,
		Value:     event.Snapshot.Value,
		Message:   event.Message,
	}
	if event.Type == holdloop.EventOutcome {
		data.Outcome = event.Outcome.String()
	}

	env := envelope{Type: string(event.Type), Data: data}
	if !event.At.IsZero() {
		at := event.At
		env.Ts = &at
	}
	return json.Marshal(env)
}

// Server exposes a Hub over HTTP.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	http   *http.Server
}

// NewServer creates a feed server with its own hub.
func NewServer(logger *slog.Logger, cfg HubConfig) *Server {
	logger = logging.OrDiscard(logger)
	return &Server{
		logger: logger,
		hub:    NewHub(logger, cfg),
	}
}

// Hub returns the server hub.
func (s *Server) Hub() *Hub { return s.hub }

// Register installs the websocket handler on mux.
func (s *Server) Register(mux *http.ServeMux, path string) {
	if mux == nil {
		return
	}
	mux.HandleFunc(path, s.handleFeed)
}

// ListenAndServe runs the hub and an HTTP server on address until ctx is
// canceled. The feed lives at /feed.
func (s *Server) ListenAndServe(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen feed %s: %w", address, err)
	}

	mux := http.NewServeMux()
	s.Register(mux, "/feed")
	s.http = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go s.hub.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	s.logger.Info("feed listening", "address", listener.Addr().String())
	if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve feed: %w", err)
	}
	return nil
}

// Pump forwards hold loop events to the hub until events closes or ctx is
// canceled.
func (s *Server) Pump(ctx context.Context, events <-chan holdloop.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			frame, err := Encode(event)
			if err != nil {
				s.logger.Warn("encode feed frame", "error", err)
				continue
			}
			s.hub.BroadcastBytes(frame)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.hub.Done():
		http.Error(w, "feed stopped", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("feed upgrade failed", "error", err)
		return
	}

	client := newClient(s.hub, conn, r.RemoteAddr)
	select {
	case s.hub.register <- client:
	case <-s.hub.Done():
		_ = conn.Close()
		return
	}

	// pumps live as long as the hub
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.hub.Done():
			cancel()
			_ = conn.Close()
		case <-ctx.Done():
		}
	}()

	go client.writePump(ctx)
	client.readPump(ctx)
}
