package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/pkg"
)

const clearedMessage = "the game was closed by the server"

type registry interface {
	Create(mode entity.Mode, creatorID string) (*entity.Game, error)
	Get(code string) (*entity.Game, error)
	Remove(code string) bool
	FindByPlayer(playerID string) []*entity.Game
	All() []*entity.Game
}

// publisher delivers events to participants by id. Unknown ids are ignored.
type publisher interface {
	Publish(recipients []string, event Event)
	Kick(playerID string)
}

type metrics interface {
	SessionCreated(mode string)
	SessionFinished(reason string)
	MoveAccepted()
}

type archiver interface {
	Archive(result *entity.Result)
}

// GameManager turns participant intents into registry and game operations and
// publishes the resulting events. Every intent is serialized by one mutex.
type GameManager struct {
	mu sync.Mutex

	logger    *slog.Logger
	registry  registry
	publisher publisher
	metrics   metrics
	archiver  archiver
}

func NewGameManager(logger *slog.Logger, registry registry, publisher publisher, metrics metrics, archiver archiver) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		registry:  registry,
		publisher: publisher,
		metrics:   metrics,
		archiver:  archiver,
	}
}

// CreateGame opens a new room with the caller as its first player.
func (that *GameManager) CreateGame(playerID, rawMode string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "CreateGame", "playerID", playerID)

	mode, err := entity.ParseMode(rawMode)
	if err != nil {
		return that.reject(playerID, err)
	}

	game, err := that.registry.Create(mode, playerID)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.reject(playerID, err)
	}

	that.metrics.SessionCreated(string(mode))

	that.publisher.Publish([]string{playerID}, Event{
		Action:  EventGameCreated,
		Payload: GameCreatedPayload{RoomID: game.ID, Mode: game.Mode},
	})

	log.Info("game created", "roomID", game.ID, "mode", mode)

	return nil
}

// JoinGame seats the caller in an existing room and starts the game once the roster is complete.
func (that *GameManager) JoinGame(playerID, roomID, rawMode string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID = pkg.NormalizeRoomCode(roomID)
	log := that.logger.With("method", "JoinGame", "playerID", playerID, "roomID", roomID)

	if roomID == "" {
		return that.reject(playerID, apperror.ErrInvalidRoomCode)
	}

	mode, err := entity.ParseMode(rawMode)
	if err != nil {
		return that.reject(playerID, err)
	}

	game, err := that.registry.Get(roomID)
	if err != nil {
		return that.reject(playerID, err)
	}

	started, err := game.Join(playerID, mode)
	if err != nil {
		log.Debug("join rejected", "error", err)
		return that.reject(playerID, err)
	}

	room := game.PlayerIDs()

	that.publisher.Publish(room, Event{
		Action:  EventUpdatePlayers,
		Payload: PlayersPayload{RoomID: game.ID, Players: room},
	})

	if !started {
		missing := game.RequiredPlayers() - len(room)
		that.publisher.Publish([]string{playerID}, Event{
			Action:  EventSuccess,
			Payload: MessagePayload{Message: fmt.Sprintf("joined room %s, waiting for %d more player(s)", game.ID, missing)},
		})

		log.Info("player joined", "players", len(room))

		return nil
	}

	that.publisher.Publish(room, Event{Action: EventStartGame, Payload: startGamePayload(game)})
	that.publisher.Publish(room, Event{Action: EventUpdateBoard, Payload: boardPayload(game)})

	log.Info("game started", "mode", game.Mode)

	return nil
}

// Play drops a token for the caller. Moves against a missing room, a waiting
// game or out of turn are ignored without any event.
func (that *GameManager) Play(playerID, roomID string, column int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID = pkg.NormalizeRoomCode(roomID)
	log := that.logger.With("method", "Play", "playerID", playerID, "roomID", roomID)

	if roomID == "" {
		return that.reject(playerID, apperror.ErrInvalidRoomCode)
	}

	if column < 0 || column >= entity.Columns {
		return that.reject(playerID, fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column))
	}

	game, err := that.registry.Get(roomID)
	if err != nil {
		log.Debug("move ignored", "error", err)
		return nil
	}

	outcome, err := game.Play(playerID, column)
	switch {
	case errors.Is(err, apperror.ErrColumnFull):
		return that.reject(playerID, err)
	case err != nil:
		log.Debug("move ignored", "error", err)
		return nil
	}

	that.metrics.MoveAccepted()

	room := game.PlayerIDs()
	that.publisher.Publish(room, Event{Action: EventUpdateBoard, Payload: boardPayload(game)})

	switch {
	case outcome.HasWinner():
		that.publisher.Publish(room, Event{
			Action:  EventGameWon,
			Payload: GameWonPayload{RoomID: game.ID, Winner: outcome.Winner, Team: outcome.Team},
		})
		that.finish(game)
	case outcome.IsDraw():
		that.publisher.Publish(room, Event{
			Action:  EventGameDraw,
			Payload: MessagePayload{Message: "the board is full, nobody wins"},
		})
		that.finish(game)
	}

	return nil
}

// LeaveGame is the explicit form of a disconnect for a single room.
func (that *GameManager) LeaveGame(playerID, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	roomID = pkg.NormalizeRoomCode(roomID)
	if roomID == "" {
		return that.reject(playerID, apperror.ErrInvalidRoomCode)
	}

	game, err := that.registry.Get(roomID)
	if err != nil {
		return that.reject(playerID, err)
	}

	if err = that.leave(game, playerID); err != nil {
		return that.reject(playerID, err)
	}

	return nil
}

// Disconnect ends every game the participant is seated in.
func (that *GameManager) Disconnect(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Disconnect", "playerID", playerID)

	for _, game := range that.registry.FindByPlayer(playerID) {
		if err := that.leave(game, playerID); err != nil {
			log.Error("failed to leave game", "roomID", game.ID, "error", err)
		}
	}
}

// ClearAll closes every live game, disconnecting its members, and returns how many were closed.
func (that *GameManager) ClearAll() (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	games := that.registry.All()
	if len(games) == 0 {
		return 0, apperror.ErrNoActiveGames
	}

	for _, game := range games {
		room := game.PlayerIDs()

		game.Abort(entity.ReasonCleared)

		that.publisher.Publish(room, Event{
			Action:  EventGameDeleted,
			Payload: MessagePayload{Message: clearedMessage},
		})

		for _, id := range room {
			that.publisher.Kick(id)
		}

		that.finish(game)
	}

	that.logger.Info("games cleared", "count", len(games))

	return len(games), nil
}

// ListGames returns a snapshot of the live games.
func (that *GameManager) ListGames() []GameSummary {
	that.mu.Lock()
	defer that.mu.Unlock()

	games := that.registry.All()
	summaries := make([]GameSummary, 0, len(games))

	for _, game := range games {
		summaries = append(summaries, GameSummary{
			RoomID:      game.ID,
			Mode:        game.Mode,
			Status:      game.Status,
			Players:     game.PlayerIDs(),
			CurrentTurn: game.Turn,
			Moves:       game.Moves,
		})
	}

	return summaries
}

func (that *GameManager) leave(game *entity.Game, playerID string) error {
	room := game.PlayerIDs()

	outcome, err := game.Leave(playerID)
	if err != nil {
		return fmt.Errorf("failed to leave game %s: %w", game.ID, err)
	}

	that.publisher.Publish(room, Event{
		Action:  EventPlayerLeft,
		Payload: PlayerLeftPayload{RoomID: game.ID, PlayerID: playerID},
	})

	if outcome.HasWinner() {
		that.publisher.Publish(room, Event{
			Action:  EventGameWon,
			Payload: GameWonPayload{RoomID: game.ID, Winner: outcome.Winner, Team: outcome.Team},
		})
	}

	that.finish(game)

	return nil
}

// finish drops a finished game from the registry in the same critical section that finished it.
func (that *GameManager) finish(game *entity.Game) {
	that.registry.Remove(game.ID)
	that.metrics.SessionFinished(game.Reason)
	that.archiver.Archive(game.Result())

	that.logger.Info("game finished",
		"roomID", game.ID,
		"reason", game.Reason,
		"winner", game.Winner,
		"team", game.WinnerTeam,
	)
}

// reject reports err to the acting participant only and returns it.
func (that *GameManager) reject(playerID string, err error) error {
	that.publisher.Publish([]string{playerID}, Event{
		Action:  EventError,
		Payload: MessagePayload{Message: err.Error()},
	})

	return err
}
