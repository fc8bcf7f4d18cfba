package lobby

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry is the process-wide map from lobby key to live lobby. Lobbies are
// created lazily on first join and destroyed the instant the last participant
// leaves; they are never pre-provisioned.
//
// Lock order is always registry then lobby, so joins can't race against a
// concurrent destruction of the same lobby.
type Registry struct {
	logger *slog.Logger

	mu      sync.Mutex
	lobbies map[string]*Lobby
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:  logger.With("component", "lobby-registry"),
		lobbies: make(map[string]*Lobby),
	}
}

// Join - resolves (or lazily creates) the lobby for mode/size and adds the
// participant. Returns the lobby and the participant's stable player index,
// or ErrLobbyFull / a validation error from the engine.
func (that *Registry) Join(mode Mode, size int, p Participant) (*Lobby, int, error) {
	if mode == ModeUltimate {
		size = ultimateSize
	}

	key := Key(mode, size)

	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.lobbies[key]
	if !ok {
		game, err := newState(mode, size, defaultPlayers)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to create game: %w", err)
		}

		current = &Lobby{
			key:  key,
			mode: mode,
			size: size,
			game: game,
		}
		that.lobbies[key] = current

		that.logger.Info("lobby created", "key", key)
	}

	idx, err := current.join(p)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to join lobby %s: %w", key, err)
	}

	return current, idx, nil
}

// Leave - removes the participant from its lobby and destroys the lobby once
// it has no participants left.
func (that *Registry) Leave(current *Lobby, p Participant) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if remaining := current.leave(p); remaining == 0 {
		delete(that.lobbies, current.key)
		that.logger.Info("lobby destroyed", "key", current.key)
	}
}

// Len - reports how many lobbies are live.
func (that *Registry) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.lobbies)
}
