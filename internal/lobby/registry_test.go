package lobby

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playgrid/gridline-backend/internal/apperror"
)

type initCall struct {
	playerIndex int
	players     int
	game        any
}

type notifyCall struct {
	players int
	game    any
}

// fakeParticipant records every notification it receives.
type fakeParticipant struct {
	inits    []initCall
	notifies []notifyCall
}

func (that *fakeParticipant) Init(playerIndex int, game any, players int) {
	that.inits = append(that.inits, initCall{playerIndex: playerIndex, players: players, game: game})
}

func (that *fakeParticipant) Notify(game any, players int) {
	that.notifies = append(that.notifies, notifyCall{players: players, game: game})
}

func newTestRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_Join(t *testing.T) {
	t.Run("first join creates the lobby lazily", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry()
		require.Equal(t, 0, registry.Len())

		// When: a participant joins classic 3x3
		p := &fakeParticipant{}
		current, idx, err := registry.Join(ModeClassic, 3, p)

		// Then: the lobby exists, the joiner is player 0
		require.NoError(t, err)
		require.Equal(t, 0, idx)
		require.Equal(t, 1, registry.Len())
		require.Equal(t, "classic-3", current.Key())

		// Then: the joiner got a personal init and the state broadcast
		require.Len(t, p.inits, 1)
		require.Equal(t, 0, p.inits[0].playerIndex)
		require.Equal(t, 1, p.inits[0].players)
		require.Len(t, p.notifies, 1)
	})

	t.Run("second join lands in the same lobby", func(t *testing.T) {
		registry := newTestRegistry()

		p1 := &fakeParticipant{}
		first, _, err := registry.Join(ModeClassic, 3, p1)
		require.NoError(t, err)

		p2 := &fakeParticipant{}
		second, idx, err := registry.Join(ModeClassic, 3, p2)
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, idx)
		require.Equal(t, 1, registry.Len())

		// Then: the first participant heard about the newcomer
		require.Len(t, p1.notifies, 2)
		require.Equal(t, 2, p1.notifies[1].players)
	})

	t.Run("different sizes are different lobbies", func(t *testing.T) {
		registry := newTestRegistry()

		_, _, err := registry.Join(ModeClassic, 3, &fakeParticipant{})
		require.NoError(t, err)
		_, _, err = registry.Join(ModeClassic, 4, &fakeParticipant{})
		require.NoError(t, err)

		require.Equal(t, 2, registry.Len())
	})

	t.Run("ultimate ignores the requested size", func(t *testing.T) {
		registry := newTestRegistry()

		first, _, err := registry.Join(ModeUltimate, 5, &fakeParticipant{})
		require.NoError(t, err)
		second, _, err := registry.Join(ModeUltimate, 3, &fakeParticipant{})
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, "ultimate-3", first.Key())
	})

	t.Run("full lobby rejects the third join", func(t *testing.T) {
		registry := newTestRegistry()

		_, _, err := registry.Join(ModeClassic, 3, &fakeParticipant{})
		require.NoError(t, err)
		_, _, err = registry.Join(ModeClassic, 3, &fakeParticipant{})
		require.NoError(t, err)

		// When: a third participant tries the same lobby
		p3 := &fakeParticipant{}
		_, _, err = registry.Join(ModeClassic, 3, p3)

		// Then: the join fails and the latecomer got nothing
		require.ErrorIs(t, err, apperror.ErrLobbyFull)
		require.Empty(t, p3.inits)
		require.Empty(t, p3.notifies)
	})

	t.Run("rejects unknown mode and bad size", func(t *testing.T) {
		registry := newTestRegistry()

		_, _, err := registry.Join(Mode("chess"), 3, &fakeParticipant{})
		require.ErrorIs(t, err, apperror.ErrUnknownMode)

		_, _, err = registry.Join(ModeClassic, 7, &fakeParticipant{})
		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)

		require.Equal(t, 0, registry.Len())
	})
}

func TestRegistry_Leave(t *testing.T) {
	t.Run("remaining participants hear the new count", func(t *testing.T) {
		registry := newTestRegistry()

		p1 := &fakeParticipant{}
		current, _, err := registry.Join(ModeClassic, 3, p1)
		require.NoError(t, err)

		p2 := &fakeParticipant{}
		_, _, err = registry.Join(ModeClassic, 3, p2)
		require.NoError(t, err)

		// When: player 0 disconnects
		registry.Leave(current, p1)

		// Then: the lobby survives and player 1 is told it is alone
		require.Equal(t, 1, registry.Len())
		require.Equal(t, 1, p2.notifies[len(p2.notifies)-1].players)
	})

	t.Run("last leave destroys the lobby", func(t *testing.T) {
		registry := newTestRegistry()

		p := &fakeParticipant{}
		current, _, err := registry.Join(ModeClassic, 3, p)
		require.NoError(t, err)

		registry.Leave(current, p)
		require.Equal(t, 0, registry.Len())

		// When: somebody joins the same key again
		fresh, idx, err := registry.Join(ModeClassic, 3, &fakeParticipant{})
		require.NoError(t, err)

		// Then: it is a brand new lobby with a brand new game
		require.NotSame(t, current, fresh)
		require.Equal(t, 0, idx)
	})
}
