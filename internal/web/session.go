package web

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/partview/pkg/config"
	"github.com/philipparndt/partview/pkg/viewer"
)

// message is an inbound control message from the page.
type message struct {
	Type   string  `json:"type"`
	Src    string  `json:"src,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
}

// stateMessage is the outbound JSON mirror of viewer.State.
type stateMessage struct {
	Type      string `json:"type"`
	Phase     string `json:"phase"`
	Message   string `json:"message,omitempty"`
	URL       string `json:"url,omitempty"`
	Error     string `json:"error,omitempty"`
	Triangles int    `json:"triangles,omitempty"`
}

// session drives one viewer controller over one websocket connection.
// Frames and state updates come from separate goroutines, so every
// write to the connection goes through writeMu.
type session struct {
	conn     *websocket.Conn
	ctrl     *viewer.Controller
	writeMu  sync.Mutex
	frameBuf bytes.Buffer
	attached bool
}

func newSession(conn *websocket.Conn, settings config.Provider) *session {
	s := &session{conn: conn}
	s.ctrl = viewer.New(
		viewer.WithSettings(settings),
		viewer.WithFrameHandler(s.sendFrame),
		viewer.WithStateHandler(s.sendState),
	)
	return s
}

// run reads control messages until the connection drops.
func (s *session) run() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Invalid message: %v", err)
			continue
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg message) {
	switch msg.Type {
	case "hello":
		if s.attached {
			return
		}
		if err := s.ctrl.Attach(msg.Width, msg.Height); err != nil {
			log.Printf("Attach failed: %v", err)
			return
		}
		s.attached = true
	case "load":
		s.ctrl.SetSource(msg.Src)
	case "resize":
		s.ctrl.ResizeTo(msg.Width, msg.Height)
	case "orbit":
		s.ctrl.Orbit(msg.DX, msg.DY)
	case "zoom":
		s.ctrl.Zoom(msg.Delta)
	case "reset":
		s.ctrl.ResetView()
	default:
		log.Printf("Unknown message type %q", msg.Type)
	}
}

// sendFrame encodes a finished frame as PNG and pushes it as a binary
// message. The render loop delivers frames one at a time, so the encode
// buffer is reused without further locking.
func (s *session) sendFrame(frame *image.RGBA) {
	s.frameBuf.Reset()
	if err := png.Encode(&s.frameBuf, frame); err != nil {
		log.Printf("Frame encode error: %v", err)
		return
	}

	s.writeMu.Lock()
	err := s.conn.WriteMessage(websocket.BinaryMessage, s.frameBuf.Bytes())
	s.writeMu.Unlock()
	if err != nil {
		log.Printf("Frame write error: %v", err)
	}
}

// sendState pushes a state change as a JSON text message.
func (s *session) sendState(st viewer.State) {
	out := stateMessage{
		Type:    "state",
		Phase:   st.Phase.String(),
		Message: st.Message,
		URL:     st.URL,
	}
	if st.Err != nil {
		out.Error = st.Err.Error()
	}
	if model := s.ctrl.Geometry(); model != nil {
		out.Triangles = model.TriangleCount()
	}

	data, err := json.Marshal(out)
	if err != nil {
		log.Printf("State encode error: %v", err)
		return
	}

	s.writeMu.Lock()
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.writeMu.Unlock()
	if err != nil {
		log.Printf("State write error: %v", err)
	}
}

// close releases the controller and the connection. Closing the
// controller first stops the render loop, so no writes race the
// connection teardown.
func (s *session) close() {
	s.ctrl.Close()
	s.conn.Close()
}
