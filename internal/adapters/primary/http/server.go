package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// reloadScript is injected into index.html so open tabs follow re-exports
const reloadScript = `<script>
(function () {
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var socket = new WebSocket(proto + location.host + '/ws');
  socket.onmessage = function (msg) {
    var event = JSON.parse(msg.data);
    if (event.type === 'reload') {
      location.reload();
    } else if (event.type === 'file_change') {
      console.info('ezprez: ' + event.data.file + ' ' + event.data.change + ', rebuilding');
    } else if (event.type === 'error') {
      console.error('ezprez: ' + event.data.message);
    }
  };
})();
</script>
`

// Server serves an exported presentation directory and pushes reload events
// to connected browsers
type Server struct {
	root   string
	config entities.ServerConfig
	logger ports.Logger

	mu       sync.RWMutex
	server   *http.Server
	listener net.Listener
	connMgr  *ConnectionManager
	stopMgr  context.CancelFunc
	running  bool
}

// NewServer creates a preview server for the presentation exported to root
func NewServer(root string, config entities.ServerConfig, logger ports.Logger) *Server {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Server{
		root:    root,
		config:  config,
		logger:  logger,
		connMgr: NewConnectionManager(),
	}
}

// Start listens on the configured address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Address(), err)
	}

	mgrCtx, cancel := context.WithCancel(ctx)
	s.connMgr = NewConnectionManager()
	go s.connMgr.Run(mgrCtx)

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.GetReadTimeout(),
		ReadTimeout:       s.config.GetReadTimeout(),
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	s.listener = listener
	s.stopMgr = cancel
	s.running = true

	srv := s.server
	go func() {
		s.logger.Info("Preview server listening on %s", listener.Addr())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop disconnects clients and shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.stopMgr()
	s.running = false

	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// URL returns the address browsers should open. It is empty until Start.
func (s *Server) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	if !ok {
		return "http://" + s.listener.Addr().String() + "/"
	}

	host := s.config.Host
	if host == "" || (addr.IP.IsUnspecified() && host != "localhost") {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, fmt.Sprint(addr.Port)) + "/"
}

// Clients returns the number of connected browsers
func (s *Server) Clients() int {
	return s.manager().Count()
}

func (s *Server) manager() *ConnectionManager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connMgr
}

// Handler builds the router: the document with the reload script, the
// websocket endpoint, a health check, and the exported files
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/index.html", s.handleIndex).Methods(http.MethodGet, http.MethodHead)
	router.PathPrefix("/").Handler(s.secureFileServer()).Methods(http.MethodGet, http.MethodHead)

	router.Use(recoveryMiddleware(s.logger))
	router.Use(loggingMiddleware(s.logger))
	router.Use(previewHeadersMiddleware)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	return c.Handler(router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"clients": s.Clients(),
	})
}

// handleIndex serves the exported index.html with the reload script added
// before </body>
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(filepath.Join(s.root, "index.html")) // #nosec G304 - fixed name under the export root
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "presentation not exported yet", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.logger.Error("reading index.html: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(injectReloadScript(data))
}

// injectReloadScript inserts the reload script before the last </body>, or
// appends it when the document has none
func injectReloadScript(doc []byte) []byte {
	idx := bytes.LastIndex(bytes.ToLower(doc), []byte("</body>"))
	if idx < 0 {
		return append(append([]byte{}, doc...), reloadScript...)
	}

	out := make([]byte, 0, len(doc)+len(reloadScript))
	out = append(out, doc[:idx]...)
	out = append(out, reloadScript...)
	out = append(out, doc[idx:]...)
	return out
}

// secureFileServer serves files under the export root and refuses paths
// that escape it
func (s *Server) secureFileServer() http.Handler {
	files := http.FileServer(http.Dir(s.root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleanPath := filepath.Clean("/" + r.URL.Path)
		if strings.Contains(r.URL.Path, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		absRoot, err := filepath.Abs(s.root)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		absPath := filepath.Join(absRoot, filepath.FromSlash(cleanPath))
		if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(absPath); errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}

		files.ServeHTTP(w, r)
	})
}

// Ensure Server implements ports.PreviewServer
var _ ports.PreviewServer = (*Server)(nil)
