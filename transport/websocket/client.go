package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/playgrid/gridline-backend/internal/lobby"
)

const (
	writeWait     = 5 * time.Second
	sendQueueSize = 64
)

// client is one connected player: the websocket conn, an outbound queue
// drained by a single writer goroutine, and the session record (lobby plus
// player index) attached on join and cleared on disconnect.
type client struct {
	id     uuid.UUID
	logger *slog.Logger
	conn   *websocket.Conn
	send   chan []byte

	current   *lobby.Lobby
	playerIdx int
}

func newClient(logger *slog.Logger, conn *websocket.Conn) *client {
	id := uuid.New()

	return &client{
		id:     id,
		logger: logger.With("conn", id.String()),
		conn:   conn,
		send:   make(chan []byte, sendQueueSize),
	}
}

// Init - implements lobby.Participant.
func (that *client) Init(playerIndex int, game any, players int) {
	that.enqueue(initResponse{Type: "init", PlayerIndex: playerIndex, Game: game, Players: players})
}

// Notify - implements lobby.Participant.
func (that *client) Notify(game any, players int) {
	that.enqueue(stateResponse{Type: "state", Game: game, Players: players})
}

func (that *client) sendError(reason string) {
	that.enqueue(errorResponse{Type: "error", Reason: reason})
}

// enqueue - marshals and queues a message for the write pump. Enqueueing is
// non-blocking because it happens under the lobby mutex; a queue this deep
// only fills when the peer stopped reading, so dropping is safe.
func (that *client) enqueue(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		that.logger.Error("failed to marshal message", "error", err)
		return
	}

	select {
	case that.send <- data:
	default:
		that.logger.Warn("send queue full, dropping message")
	}
}

// writePump - the only goroutine allowed to write to the conn. Exits when the
// send queue is closed or the peer goes away.
func (that *client) writePump() {
	defer that.conn.Close()

	for msg := range that.send {
		if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}

		if err := that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
