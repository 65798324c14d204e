package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Reasons a game reaches StatusFinished.
const (
	ReasonWin       = "win"
	ReasonDraw      = "draw"
	ReasonForfeit   = "forfeit"
	ReasonAbandoned = "abandoned"
	ReasonCleared   = "cleared"
)

// Game is a single room: roster, board and turn pointer. It moves
// waiting -> active -> finished and never goes back.
type Game struct {
	ID         string    `json:"id"`
	Mode       Mode      `json:"mode"`
	Status     string    `json:"status"`
	Players    []*Player `json:"players"`
	Board      *Board    `json:"board,omitempty"`
	Turn       string    `json:"currentTurn"`
	Winner     string    `json:"winner,omitempty"`
	WinnerTeam Team      `json:"winnerTeam,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Moves      int       `json:"moves"`
	CreatedAt  time.Time `json:"createdAt"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
}

func NewGame(id string, mode Mode, creatorID string) *Game {
	return &Game{
		ID:        id,
		Mode:      mode,
		Status:    StatusWaiting,
		Players:   []*Player{{ID: creatorID}},
		CreatedAt: time.Now(),
	}
}

func (that *Game) RequiredPlayers() int {
	return that.Mode.RequiredPlayers()
}

func (that *Game) PlayerIDs() []string {
	ids := make([]string, 0, len(that.Players))
	for _, player := range that.Players {
		ids = append(ids, player.ID)
	}

	return ids
}

func (that *Game) HasPlayer(playerID string) bool {
	return that.seatOf(playerID) >= 0
}

// Others returns the roster without playerID, in seat order.
func (that *Game) Others(playerID string) []string {
	return slices.DeleteFunc(that.PlayerIDs(), func(id string) bool {
		return id == playerID
	})
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) ConfirmActiveState() error {
	switch that.Status {
	case StatusActive:
		return nil
	case StatusWaiting:
		return apperror.ErrGameIsNotStarted
	case StatusFinished:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("unknown game status: %s", that.Status)
	}
}

// Join seats the player. It returns true when the roster became complete and the game started.
func (that *Game) Join(playerID string, mode Mode) (bool, error) {
	if that.IsFinished() {
		return false, apperror.ErrGameFinished
	}

	if mode != that.Mode {
		return false, fmt.Errorf("%w: game is %s", apperror.ErrModeMismatch, that.Mode)
	}

	if that.HasPlayer(playerID) {
		return false, apperror.ErrAlreadyJoined
	}

	if len(that.Players) >= that.RequiredPlayers() {
		return false, apperror.ErrGameFull
	}

	that.Players = append(that.Players, &Player{ID: playerID})

	if len(that.Players) < that.RequiredPlayers() {
		return false, nil
	}

	that.start()

	return true, nil
}

func (that *Game) start() {
	that.Board = NewBoard()
	that.Turn = that.Players[0].ID
	that.Status = StatusActive

	if that.Mode.IsTeam() {
		for seat, player := range that.Players {
			player.Team = SeatTeam(seat)
		}
	}
}

// Play drops the current player's token. A winning or board-filling drop finishes the game.
func (that *Game) Play(playerID string, column int) (Outcome, error) {
	if err := that.ConfirmActiveState(); err != nil {
		return Outcome{}, err
	}

	if that.Turn != playerID {
		return Outcome{}, apperror.ErrNotYourTurn
	}

	if _, err := that.Board.Drop(column, playerID); err != nil {
		return Outcome{}, err
	}

	that.Moves++

	outcome := Evaluate(that.Board, that.Mode, that.PlayerIDs())

	switch {
	case outcome.HasWinner():
		// only the last drop can complete a run, so the mover is the one who triggered it
		if that.Mode.IsTeam() {
			outcome.Winner = playerID
		}

		that.Winner = outcome.Winner
		that.WinnerTeam = outcome.Team
		that.finish(ReasonWin)
	case outcome.IsDraw():
		that.finish(ReasonDraw)
	default:
		that.Turn = that.nextTurn()
	}

	return outcome, nil
}

// nextTurn rotates by seat order. With two players this alternates between them.
func (that *Game) nextTurn() string {
	seat := that.seatOf(that.Turn)

	return that.Players[(seat+1)%len(that.Players)].ID
}

// Leave ends the game on behalf of the leaving player. In an active solo game
// the opponent wins, in an active team game the leaver's team forfeits to the
// lowest seat of the other team. A waiting game is abandoned without winner.
func (that *Game) Leave(playerID string) (Outcome, error) {
	if !that.HasPlayer(playerID) {
		return Outcome{}, apperror.ErrNotInGame
	}

	if that.IsFinished() {
		return Outcome{}, apperror.ErrGameFinished
	}

	if that.IsWaiting() {
		that.finish(ReasonAbandoned)
		return Outcome{}, nil
	}

	var outcome Outcome

	if that.Mode.IsTeam() {
		team := that.TeamOf(playerID).Opponent()
		outcome = Outcome{Winner: that.TeamMembers(team)[0], Team: team}
	} else {
		outcome = Outcome{Winner: that.Others(playerID)[0]}
	}

	that.Winner = outcome.Winner
	that.WinnerTeam = outcome.Team
	that.finish(ReasonForfeit)

	return outcome, nil
}

// Abort finishes the game without a winner.
func (that *Game) Abort(reason string) {
	if that.IsFinished() {
		return
	}

	that.finish(reason)
}

func (that *Game) finish(reason string) {
	that.Status = StatusFinished
	that.Reason = reason
	that.Turn = ""
	that.FinishedAt = time.Now()
}

func (that *Game) TeamOf(playerID string) Team {
	if !that.Mode.IsTeam() {
		return TeamNone
	}

	return SeatTeam(that.seatOf(playerID))
}

// TeamMembers lists the players seated on the team, in seat order.
func (that *Game) TeamMembers(team Team) []string {
	var members []string

	if !that.Mode.IsTeam() {
		return members
	}

	for seat, player := range that.Players {
		if SeatTeam(seat) == team {
			members = append(members, player.ID)
		}
	}

	return members
}

func (that *Game) TeamColors() map[string]Team {
	colors := make(map[string]Team, len(that.Players))

	if !that.Mode.IsTeam() {
		return colors
	}

	for seat, player := range that.Players {
		colors[player.ID] = SeatTeam(seat)
	}

	return colors
}

func (that *Game) Result() *Result {
	return &Result{
		RoomID:     that.ID,
		Mode:       that.Mode,
		Players:    that.PlayerIDs(),
		Winner:     that.Winner,
		Team:       that.WinnerTeam,
		Reason:     that.Reason,
		Moves:      that.Moves,
		FinishedAt: that.FinishedAt,
	}
}

func (that *Game) seatOf(playerID string) int {
	for seat, player := range that.Players {
		if player.ID == playerID {
			return seat
		}
	}

	return -1
}
