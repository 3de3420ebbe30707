// Package web provides the HTTP API consumed by the report-generation
// service.
//
// The server exposes a stateless derivation endpoint (POST a period's
// financials, receive the derived cash-flow statement) alongside the
// category taxonomy. It can optionally be bound to a scenario file on
// disk, in which case the derived statement is served on GET and the
// file is watched for changes with reload events broadcast over SSE.
//
// SECURITY WARNING: This server has no authentication and should only
// be bound to localhost (127.0.0.1). Do not expose it to untrusted
// networks.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/cashflow/loader"
	"github.com/robinvdvleuten/cashflow/statement"
	"github.com/robinvdvleuten/cashflow/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	engine *statement.Engine
	loader *loader.Loader

	mu     sync.RWMutex
	period *statement.PeriodFinancials // set only in file mode

	// periodFile is the scenario file bound to GET /api/statement.
	// Empty when the server runs in stateless mode.
	periodFile string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// New creates a stateless server: only the POST derivation endpoint
// and the taxonomy are served.
func New(port int) *Server {
	return NewWithFile(port, "")
}

// NewWithFile creates a server additionally bound to a scenario file
// whose derived statement is served on GET /api/statement.
func NewWithFile(port int, periodFile string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		engine:     statement.NewEngine(statement.NewRegistry()),
		loader:     loader.New(),
		periodFile: periodFile,
	}
}

func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	// Initialize SSE clients map
	s.sseClients = make(map[chan string]struct{})

	if s.periodFile != "" {
		loadTimer := timer.Child(fmt.Sprintf("web.load_period %s", s.periodFile))
		err := s.reloadPeriod(ctx)
		loadTimer.End()
		if err != nil {
			return fmt.Errorf("failed to load period file: %w", err)
		}

		if s.WatchEnabled {
			if err := s.startWatcher(ctx); err != nil {
				return fmt.Errorf("failed to start file watcher: %w", err)
			}
		}
	}

	mux := s.setupRouter()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) setupRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/statement", s.handleDeriveStatement)
	mux.HandleFunc("GET /api/statement", s.handleGetStatement)
	mux.HandleFunc("GET /api/categories", s.handleGetCategories)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	return mux
}

// reloadPeriod loads or reloads the scenario file from disk. The
// period is stored even if it would fail derivation; precondition
// errors are reported per request so the client sees them.
// Caller must NOT hold the mutex - this method acquires it internally.
func (s *Server) reloadPeriod(ctx context.Context) error {
	period, err := s.loader.Load(ctx, s.periodFile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.period = period
	s.mu.Unlock()

	return nil
}

// startWatcher starts a file watcher for the scenario file. It reloads
// the period and broadcasts SSE events when the file changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.periodFile); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.periodFile, err)
	}

	go s.runWatcher(ctx, watcher)

	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleFileChange(ctx, watcher)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleFileChange reloads the period and notifies connected clients.
func (s *Server) handleFileChange(ctx context.Context, watcher *fsnotify.Watcher) {
	if err := s.reloadPeriod(ctx); err != nil {
		log.Printf("Failed to reload period file: %v", err)
		return
	}

	// Re-add the file to catch atomic saves that replaced the inode
	if err := watcher.Add(s.periodFile); err != nil {
		log.Printf("Warning: failed to re-watch %s: %v", s.periodFile, err)
	}

	s.broadcast("reload")
}

// handleSSE handles Server-Sent Events connections for reload
// notifications in file mode.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseClients, clientChan)
		s.sseMu.Unlock()
		close(clientChan)
	}()

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeJSONError writes a structured error response with the given
// status code.
func writeJSONError(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
