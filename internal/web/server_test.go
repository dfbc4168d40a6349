package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/partview/pkg/config"
)

func stlDocument(name string) string {
	return fmt.Sprintf(`solid %s
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid %s
`, name, name)
}

func testSettings() config.Provider {
	s := config.Defaults()
	s.FPS = 60
	s.ShowHUD = false
	return config.Static(s)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(":0", testSettings()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dialViewer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msg message) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to encode message: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("Failed to send %s message: %v", msg.Type, err)
	}
}

// readUntil consumes messages until check reports done or the deadline
// passes.
func readUntil(t *testing.T, conn *websocket.Conn, check func(messageType int, data []byte) bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Connection failed while waiting: %v", err)
		}
		if check(messageType, data) {
			return
		}
	}
}

func isPNGFrame(messageType int, data []byte) bool {
	return messageType == websocket.BinaryMessage && bytes.HasPrefix(data, []byte("\x89PNG"))
}

func TestServerHome(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("Failed to fetch home page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html" {
		t.Errorf("Expected Content-Type text/html, got %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "<canvas") {
		t.Error("Expected home page to contain the viewer canvas")
	}
}

func TestServerUnknownPath(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("Failed to fetch health endpoint: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("Expected body ok, got %q", string(body))
	}
}

func TestSessionFirstFrame(t *testing.T) {
	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	sendMessage(t, conn, message{Type: "hello", Width: 64, Height: 48})

	readUntil(t, conn, func(messageType int, data []byte) bool {
		if messageType == websocket.BinaryMessage && !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Fatal("Binary message is not a PNG frame")
		}
		return isPNGFrame(messageType, data)
	})
}

func TestSessionLoadsModel(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, stlDocument("part"))
	}))
	defer model.Close()
	src := model.URL + "/part.stl"

	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	sendMessage(t, conn, message{Type: "hello", Width: 64, Height: 48})
	sendMessage(t, conn, message{Type: "load", Src: src})

	var sawLoaded, sawFrame bool
	readUntil(t, conn, func(messageType int, data []byte) bool {
		if isPNGFrame(messageType, data) {
			sawFrame = true
		}
		if messageType == websocket.TextMessage {
			var st stateMessage
			if err := json.Unmarshal(data, &st); err != nil {
				t.Fatalf("Invalid state message: %v", err)
			}
			switch st.Phase {
			case "error":
				t.Fatalf("Unexpected error state: %s", st.Error)
			case "loaded":
				if st.URL != src {
					t.Errorf("Expected state URL %q, got %q", src, st.URL)
				}
				if st.Triangles != 1 {
					t.Errorf("Expected 1 triangle, got %d", st.Triangles)
				}
				sawLoaded = true
			}
		}
		return sawLoaded && sawFrame
	})
}

func TestSessionReportsLoadError(t *testing.T) {
	model := httptest.NewServer(http.NotFoundHandler())
	defer model.Close()

	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	sendMessage(t, conn, message{Type: "hello", Width: 64, Height: 48})
	sendMessage(t, conn, message{Type: "load", Src: model.URL + "/gone.stl"})

	readUntil(t, conn, func(messageType int, data []byte) bool {
		if messageType != websocket.TextMessage {
			return false
		}
		var st stateMessage
		if err := json.Unmarshal(data, &st); err != nil {
			t.Fatalf("Invalid state message: %v", err)
		}
		if st.Phase != "error" {
			return false
		}
		if st.Error == "" {
			t.Error("Expected error detail in state message")
		}
		return true
	})
}

func TestSessionResize(t *testing.T) {
	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	sendMessage(t, conn, message{Type: "hello", Width: 64, Height: 48})
	readUntil(t, conn, isPNGFrame)

	sendMessage(t, conn, message{Type: "resize", Width: 128, Height: 96})
	readUntil(t, conn, func(messageType int, data []byte) bool {
		if !isPNGFrame(messageType, data) {
			return false
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Failed to decode frame: %v", err)
		}
		size := img.Bounds().Size()
		return size.X == 128 && size.Y == 96
	})
}

func TestSessionCameraControls(t *testing.T) {
	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	sendMessage(t, conn, message{Type: "hello", Width: 48, Height: 48})
	readUntil(t, conn, isPNGFrame)

	sendMessage(t, conn, message{Type: "orbit", DX: 0.5, DY: 0.2})
	readUntil(t, conn, isPNGFrame)

	sendMessage(t, conn, message{Type: "zoom", Delta: -0.1})
	readUntil(t, conn, isPNGFrame)

	sendMessage(t, conn, message{Type: "reset"})
	readUntil(t, conn, isPNGFrame)
}

func TestSessionIgnoresInvalidMessage(t *testing.T) {
	srv := newTestServer(t)
	conn := dialViewer(t, srv)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("Failed to send garbage: %v", err)
	}
	sendMessage(t, conn, message{Type: "unknown"})
	sendMessage(t, conn, message{Type: "hello", Width: 32, Height: 32})

	readUntil(t, conn, isPNGFrame)
}
