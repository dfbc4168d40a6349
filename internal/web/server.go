package web

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/partview/pkg/config"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The page may be embedded anywhere
	},
}

// Server hosts the embedded viewer page and one websocket canvas session
// per connection.
type Server struct {
	addr     string
	settings config.Provider
}

// NewServer creates a viewer server. A nil provider falls back to defaults.
func NewServer(addr string, settings config.Provider) *Server {
	if settings == nil {
		settings = config.Defaults
	}
	return &Server{addr: addr, settings: settings}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveHome)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	log.Printf("Starting viewer on http://localhost%s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// serveHome serves the embedded host page.
func (s *Server) serveHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlContent))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

// handleWebSocket runs one canvas session per connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	sess := newSession(conn, s.settings)
	defer sess.close()

	log.Printf("Viewer session connected from %s", r.RemoteAddr)
	sess.run()
	log.Printf("Viewer session from %s disconnected", r.RemoteAddr)
}
