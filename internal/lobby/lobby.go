package lobby

import (
	"fmt"
	"sync"

	"github.com/playgrid/gridline-backend/internal/apperror"
	"github.com/playgrid/gridline-backend/internal/entity"
)

type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeUltimate Mode = "ultimate"
)

const (
	// ultimateSize - an ultimate lobby always normalizes to one size, so every
	// ultimate join lands in the same lobby regardless of the requested size.
	ultimateSize = 3

	// defaultPlayers - lobbies are opened for two players; the engine itself
	// supports up to four.
	defaultPlayers = 2

	// minPlayersToMove - a single connected player can't play against itself.
	minPlayersToMove = 2
)

// State is what the lobby needs from either game variant.
type State interface {
	Finished() bool
	CurrentTurn() int
	Capacity() int
}

// Participant is one connected player, implemented by the transport.
// Notifications are delivered while the lobby is locked, so their order is
// exactly the serial order of lobby events.
type Participant interface {
	Init(playerIndex int, game any, players int)
	Notify(game any, players int)
}

// Move carries either a classic cell index or an ultimate local/cell pair.
type Move struct {
	Index int
	Local int
	Cell  int
}

// Lobby is a single in-progress match plus its connected participants. A
// participant's position in the slice is its player index for as long as it
// stays connected.
type Lobby struct {
	mu           sync.Mutex
	key          string
	mode         Mode
	size         int
	game         State
	participants []Participant
}

// Key - derives the registry key for a mode/size pair.
func Key(mode Mode, size int) string {
	if mode == ModeUltimate {
		size = ultimateSize
	}

	return fmt.Sprintf("%s-%d", mode, size)
}

func newState(mode Mode, size, players int) (State, error) {
	switch mode {
	case ModeClassic:
		game, err := entity.NewGame(size, players)
		if err != nil {
			return nil, err
		}

		return game, nil
	case ModeUltimate:
		game, err := entity.NewUltimateGame(players)
		if err != nil {
			return nil, err
		}

		return game, nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}
}

func (that *Lobby) Mode() Mode {
	return that.mode
}

func (that *Lobby) Key() string {
	return that.key
}

// Game - returns the current state value. States are immutable, so the caller
// may hold on to it without racing against later moves.
func (that *Lobby) Game() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game
}

// Players - returns the current participant count.
func (that *Lobby) Players() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.participants)
}

// Move - validates and applies a move for the given participant. Anything
// illegal (too few players, finished game, wrong turn, or a move the engine
// rejects) is dropped silently and triggers no broadcast.
func (that *Lobby) Move(p Participant, mv Move) {
	that.mu.Lock()
	defer that.mu.Unlock()

	idx := that.indexOf(p)
	if idx < 0 || len(that.participants) < minPlayersToMove {
		return
	}

	if that.game.Finished() || that.game.CurrentTurn() != idx {
		return
	}

	var next State
	switch game := that.game.(type) {
	case *entity.Game:
		next = game.Apply(mv.Index)
	case *entity.UltimateGame:
		next = game.Apply(mv.Local, mv.Cell)
	default:
		return
	}

	if next == that.game {
		return
	}

	that.game = next
	that.notify()
}

// Reset - replaces the game with a fresh one of the same mode, size and
// capacity; membership and player indices are untouched.
func (that *Lobby) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := newState(that.mode, that.size, that.game.Capacity())
	if err != nil {
		return
	}

	that.game = game
	that.notify()
}

// join - appends the participant and returns its player index. Must be called
// with the registry lock held.
func (that *Lobby) join(p Participant) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.participants) >= that.game.Capacity() {
		return 0, apperror.ErrLobbyFull
	}

	idx := len(that.participants)
	that.participants = append(that.participants, p)

	p.Init(idx, that.game, len(that.participants))
	that.notify()

	return idx, nil
}

// leave - removes the participant, preserving the order (and therefore the
// indices) of everyone else, and reports how many remain. The remaining
// participants are told the new count.
func (that *Lobby) leave(p Participant) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	for i, existing := range that.participants {
		if existing == p {
			that.participants = append(that.participants[:i], that.participants[i+1:]...)
			break
		}
	}

	if len(that.participants) > 0 {
		that.notify()
	}

	return len(that.participants)
}

// notify - pushes the full current state to every participant. Callers must
// hold the lobby mutex.
func (that *Lobby) notify() {
	for _, p := range that.participants {
		p.Notify(that.game, len(that.participants))
	}
}

func (that *Lobby) indexOf(p Participant) int {
	for i, existing := range that.participants {
		if existing == p {
			return i
		}
	}

	return -1
}
