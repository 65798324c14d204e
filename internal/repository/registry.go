package repository

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
)

const DefaultMaxCodeAttempts = 64

// SessionRegistry keeps the live games in memory, keyed by normalized room code.
type SessionRegistry struct {
	mu    sync.RWMutex
	games map[string]*entity.Game

	generateCode func() string
	maxAttempts  int
}

func NewSessionRegistry(generateCode func() string, maxAttempts int) *SessionRegistry {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}

	return &SessionRegistry{
		games:        make(map[string]*entity.Game),
		generateCode: generateCode,
		maxAttempts:  maxAttempts,
	}
}

// Create registers a new waiting game under a fresh room code.
func (that *SessionRegistry) Create(mode entity.Mode, creatorID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for attempt := 0; attempt < that.maxAttempts; attempt++ {
		code := pkg.NormalizeRoomCode(that.generateCode())
		if code == "" {
			continue
		}

		if _, taken := that.games[code]; taken {
			continue
		}

		game := entity.NewGame(code, mode, creatorID)
		that.games[code] = game

		return game, nil
	}

	return nil, fmt.Errorf("%w after %d attempts", apperror.ErrRegistryExhausted, that.maxAttempts)
}

func (that *SessionRegistry) Get(code string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[pkg.NormalizeRoomCode(code)]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrNotFound, code)
	}

	return game, nil
}

// Remove deletes the game and reports whether it was present.
func (that *SessionRegistry) Remove(code string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	code = pkg.NormalizeRoomCode(code)
	if _, ok := that.games[code]; !ok {
		return false
	}

	delete(that.games, code)

	return true
}

// FindByPlayer returns every live game the player is seated in.
func (that *SessionRegistry) FindByPlayer(playerID string) []*entity.Game {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var games []*entity.Game
	for _, game := range that.games {
		if game.HasPlayer(playerID) {
			games = append(games, game)
		}
	}

	sortGames(games)

	return games
}

func (that *SessionRegistry) All() []*entity.Game {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0, len(that.games))
	for _, game := range that.games {
		games = append(games, game)
	}

	sortGames(games)

	return games
}

func (that *SessionRegistry) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.games)
}

func sortGames(games []*entity.Game) {
	slices.SortFunc(games, func(a, b *entity.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})
}
