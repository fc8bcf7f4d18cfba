package websocket

import (
	"errors"

	"github.com/playgrid/gridline-backend/internal/apperror"
	"github.com/playgrid/gridline-backend/internal/lobby"
)

func (that *Server) handleJoin(c *client, msg *Message) {
	if c.current != nil {
		c.logger.Debug("join ignored, already in a lobby", "lobby", c.current.Key())
		return
	}

	current, idx, err := that.registry.Join(lobby.Mode(msg.Mode), msg.BoardSize, c)
	if err != nil {
		if errors.Is(err, apperror.ErrLobbyFull) {
			c.sendError(apperror.ErrLobbyFull.Error())
			return
		}

		// Bad mode or board size: fail the request, the connection stays
		// unjoined and may retry.
		c.logger.Warn("rejected join", "error", err)
		c.sendError("Invalid join request")

		return
	}

	c.current = current
	c.playerIdx = idx

	c.logger.Info("player joined", "lobby", current.Key(), "playerIndex", c.playerIdx)
}

func (that *Server) handleMove(c *client, msg *Message) {
	if c.current == nil {
		return
	}

	var mv lobby.Move

	switch c.current.Mode() {
	case lobby.ModeClassic:
		if msg.Index == nil {
			return
		}
		mv.Index = *msg.Index
	case lobby.ModeUltimate:
		if msg.Local == nil || msg.Cell == nil {
			return
		}
		mv.Local = *msg.Local
		mv.Cell = *msg.Cell
	default:
		return
	}

	c.current.Move(c, mv)
}

func (that *Server) handleReset(c *client, _ *Message) {
	if c.current == nil {
		return
	}

	c.current.Reset()

	c.logger.Info("lobby reset", "lobby", c.current.Key())
}
