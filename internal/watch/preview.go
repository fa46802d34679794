package watch

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/convert"
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/diag"
)

// PreviewMessage is pushed to preview clients over the websocket.
type PreviewMessage struct {
	Type        string               `json:"type"`      // "converting", "result", "error"
	Timestamp   int64                `json:"timestamp"` // Unix timestamp
	Files       []string             `json:"files,omitempty"`
	Dashboard   *coralogix.Dashboard `json:"dashboard,omitempty"`
	Diagnostics []diag.Diagnostic    `json:"diagnostics,omitempty"`
	MetricNames []string             `json:"metricNames,omitempty"`
	Error       string               `json:"error,omitempty"`
	Duration    float64              `json:"duration,omitempty"` // Milliseconds
}

// PreviewServer manages WebSocket connections for live preview. The most
// recent terminal message is replayed to clients that connect later.
type PreviewServer struct {
	logger      *zap.Logger
	connections map[*websocket.Conn]bool
	broadcast   chan *PreviewMessage
	register    chan *websocket.Conn
	unregister  chan *websocket.Conn
	done        chan struct{}
	closeOnce   sync.Once
	mutex       sync.RWMutex
	upgrader    websocket.Upgrader

	lastMu sync.RWMutex
	last   *PreviewMessage
}

// NewPreviewServer creates a new preview server
func NewPreviewServer(logger *zap.Logger) *PreviewServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	ps := &PreviewServer{
		logger:      logger,
		connections: make(map[*websocket.Conn]bool),
		broadcast:   make(chan *PreviewMessage, 256),
		register:    make(chan *websocket.Conn),
		unregister:  make(chan *websocket.Conn),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Allow no origin (same-origin)
					return true
				}
				// Allow localhost only for security
				return strings.HasPrefix(origin, "http://localhost") ||
					strings.HasPrefix(origin, "https://localhost") ||
					strings.HasPrefix(origin, "http://127.0.0.1") ||
					strings.HasPrefix(origin, "https://127.0.0.1")
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	go ps.run()

	return ps
}

// run handles the WebSocket connection lifecycle
func (ps *PreviewServer) run() {
	for {
		select {
		case <-ps.done:
			ps.logger.Debug("preview server stopping")
			ps.closeAll()
			return

		case conn := <-ps.register:
			ps.mutex.Lock()
			ps.connections[conn] = true
			total := len(ps.connections)
			ps.mutex.Unlock()
			ps.logger.Debug("preview client connected", zap.Int("total", total))

			if last := ps.Last(); last != nil {
				ps.sendTo(conn, last)
			}

		case conn := <-ps.unregister:
			ps.mutex.Lock()
			if _, ok := ps.connections[conn]; ok {
				delete(ps.connections, conn)
				conn.Close()
			}
			total := len(ps.connections)
			ps.mutex.Unlock()
			ps.logger.Debug("preview client disconnected", zap.Int("total", total))

		case message := <-ps.broadcast:
			ps.sendToAll(message)
		}
	}
}

// sendToAll sends a message to all connected clients
func (ps *PreviewServer) sendToAll(message *PreviewMessage) {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		ps.logger.Error("failed to marshal preview message", zap.Error(err))
		return
	}

	// Collect failed connections while holding the read lock
	ps.mutex.RLock()
	var failedConns []*websocket.Conn
	for conn := range ps.connections {
		if err := conn.WriteMessage(websocket.TextMessage, messageJSON); err != nil {
			ps.logger.Debug("failed to send preview message", zap.Error(err))
			failedConns = append(failedConns, conn)
		}
	}
	ps.mutex.RUnlock()

	// Remove failed connections with the write lock
	if len(failedConns) > 0 {
		ps.mutex.Lock()
		for _, conn := range failedConns {
			if _, ok := ps.connections[conn]; ok {
				conn.Close()
				delete(ps.connections, conn)
			}
		}
		ps.mutex.Unlock()
	}
}

func (ps *PreviewServer) sendTo(conn *websocket.Conn, message *PreviewMessage) {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		ps.logger.Error("failed to marshal preview message", zap.Error(err))
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, messageJSON); err != nil {
		ps.logger.Debug("failed to replay preview message", zap.Error(err))
	}
}

func (ps *PreviewServer) closeAll() {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	for conn := range ps.connections {
		conn.Close()
		delete(ps.connections, conn)
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (ps *PreviewServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := ps.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ps.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	select {
	case ps.register <- conn:
	case <-ps.done:
		conn.Close()
		return
	}

	// Start reading messages (mostly for keepalive)
	go ps.readMessages(conn)
}

// readMessages reads messages from the client (for keepalive)
func (ps *PreviewServer) readMessages(conn *websocket.Conn) {
	defer func() {
		select {
		case ps.unregister <- conn:
		case <-ps.done:
			conn.Close()
		}
	}()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				ps.logger.Debug("websocket error", zap.Error(err))
			}
			break
		}
	}
}

// send queues a message for broadcast unless the server is closed.
func (ps *PreviewServer) send(message *PreviewMessage) {
	select {
	case ps.broadcast <- message:
	case <-ps.done:
	}
}

func (ps *PreviewServer) setLast(message *PreviewMessage) {
	ps.lastMu.Lock()
	ps.last = message
	ps.lastMu.Unlock()
}

// Last returns the most recent result or error message, nil before the
// first conversion completes.
func (ps *PreviewServer) Last() *PreviewMessage {
	ps.lastMu.RLock()
	defer ps.lastMu.RUnlock()
	return ps.last
}

// NotifyConverting tells clients a conversion run has started.
func (ps *PreviewServer) NotifyConverting(files []string) {
	ps.send(&PreviewMessage{
		Type:      "converting",
		Timestamp: time.Now().Unix(),
		Files:     files,
	})
}

// NotifyResult pushes a finished conversion to clients.
func (ps *PreviewServer) NotifyResult(res *convert.Result, elapsed time.Duration) {
	msg := &PreviewMessage{
		Type:        "result",
		Timestamp:   time.Now().Unix(),
		Dashboard:   res.Dashboard,
		Diagnostics: res.Report.Diagnostics,
		MetricNames: res.Metrics.List(),
		Duration:    float64(elapsed.Milliseconds()),
	}
	ps.setLast(msg)
	ps.send(msg)
}

// NotifyError pushes a failed conversion to clients.
func (ps *PreviewServer) NotifyError(err error) {
	msg := &PreviewMessage{
		Type:      "error",
		Timestamp: time.Now().Unix(),
		Error:     err.Error(),
	}
	ps.setLast(msg)
	ps.send(msg)
}

// ConnectionCount returns the number of active connections
func (ps *PreviewServer) ConnectionCount() int {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	return len(ps.connections)
}

// Close shuts the server down and disconnects all clients.
func (ps *PreviewServer) Close() {
	ps.closeOnce.Do(func() { close(ps.done) })
}
