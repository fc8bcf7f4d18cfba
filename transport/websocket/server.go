package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/playgrid/gridline-backend/internal/lobby"
)

const maxMessageSize = 1024

// Server upgrades HTTP requests to websocket connections and runs the
// per-connection request loop.
type Server struct {
	logger   *slog.Logger
	registry *lobby.Registry
	upgrader websocket.Upgrader

	handlers map[string]func(c *client, msg *Message)
}

func New(logger *slog.Logger, registry *lobby.Registry) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]func(*client, *Message)),
	}

	server.handlers["join"] = server.handleJoin
	server.handlers["move"] = server.handleMove
	server.handlers["reset"] = server.handleReset

	return server
}

// Handler - returns the http.Handler for the upgrade endpoint.
func (that *Server) Handler() http.Handler {
	return http.HandlerFunc(that.serveConn)
}

func (that *Server) serveConn(w http.ResponseWriter, r *http.Request) {
	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(that.logger, conn)
	go c.writePump()

	c.logger.Info("connection established")
	that.readLoop(c)
}

// readLoop - processes requests from one connection until it closes. A
// malformed request fails that request only, never the connection.
func (that *Server) readLoop(c *client) {
	defer that.disconnect(c)

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg Message
		if err = json.Unmarshal(payload, &msg); err != nil {
			c.logger.Warn("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[msg.Type]
		if !ok {
			c.logger.Debug("unknown message type", "type", msg.Type)
			continue
		}

		handler(c, &msg)
	}
}

// disconnect - detaches the connection from its lobby (destroying the lobby
// if it was the last one out) and stops the write pump.
func (that *Server) disconnect(c *client) {
	if c.current != nil {
		that.registry.Leave(c.current, c)
		c.current = nil
	}

	close(c.send)

	c.logger.Info("connection closed")
}
