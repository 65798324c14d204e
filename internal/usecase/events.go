package usecase

import "github.com/rocketscienceinc/fourinarow-backend/internal/entity"

// Outbound event names, as seen by clients.
const (
	EventConnected     = "connected"
	EventGameCreated   = "gameCreated"
	EventError         = "error"
	EventSuccess       = "success"
	EventUpdatePlayers = "updatePlayers"
	EventStartGame     = "startGame"
	EventUpdateBoard   = "updateBoard"
	EventGameWon       = "gameWon"
	EventGameDraw      = "gameDraw"
	EventPlayerLeft    = "playerLeft"
	EventGameDeleted   = "gameDeleted"
)

// Event is a single outbound message. Payload is one of the *Payload types below.
type Event struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
}

type ConnectedPayload struct {
	PlayerID string `json:"playerId"`
}

type GameCreatedPayload struct {
	RoomID string      `json:"roomId"`
	Mode   entity.Mode `json:"mode"`
}

type MessagePayload struct {
	Message string `json:"message"`
}

type PlayersPayload struct {
	RoomID  string   `json:"roomId"`
	Players []string `json:"players"`
}

type StartGamePayload struct {
	RoomID     string                 `json:"roomId"`
	Players    []string               `json:"players"`
	TeamColors map[string]entity.Team `json:"teamColors,omitempty"`
	Mode       entity.Mode            `json:"mode"`
	TeamGreen  []string               `json:"teamGreen,omitempty"`
	TeamYellow []string               `json:"teamYellow,omitempty"`
}

// BoardPayload carries a copy of the board, so it stays valid after the game moves on.
type BoardPayload struct {
	RoomID        string       `json:"roomId"`
	Board         entity.Board `json:"board"`
	CurrentPlayer string       `json:"currentPlayer"`
	Mode          entity.Mode  `json:"mode"`
	TeamGreen     []string     `json:"teamGreen,omitempty"`
	TeamYellow    []string     `json:"teamYellow,omitempty"`
}

type GameWonPayload struct {
	RoomID string      `json:"roomId"`
	Winner string      `json:"winner"`
	Team   entity.Team `json:"team,omitempty"`
}

type PlayerLeftPayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

// GameSummary is the read-only view of a live game for the control endpoint.
type GameSummary struct {
	RoomID      string      `json:"roomId"`
	Mode        entity.Mode `json:"mode"`
	Status      string      `json:"status"`
	Players     []string    `json:"players"`
	CurrentTurn string      `json:"currentTurn,omitempty"`
	Moves       int         `json:"moves"`
}

func boardPayload(game *entity.Game) BoardPayload {
	return BoardPayload{
		RoomID:        game.ID,
		Board:         *game.Board,
		CurrentPlayer: game.Turn,
		Mode:          game.Mode,
		TeamGreen:     game.TeamMembers(entity.TeamGreen),
		TeamYellow:    game.TeamMembers(entity.TeamYellow),
	}
}

func startGamePayload(game *entity.Game) StartGamePayload {
	return StartGamePayload{
		RoomID:     game.ID,
		Players:    game.PlayerIDs(),
		TeamColors: game.TeamColors(),
		Mode:       game.Mode,
		TeamGreen:  game.TeamMembers(entity.TeamGreen),
		TeamYellow: game.TeamMembers(entity.TeamYellow),
	}
}
