package entity

import (
	"testing"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActiveGame(t *testing.T, mode Mode, ids ...string) *Game {
	t.Helper()

	game := NewGame("ROOM01", mode, ids[0])
	for _, id := range ids[1:] {
		_, err := game.Join(id, mode)
		require.NoError(t, err)
	}

	require.True(t, game.IsActive())

	return game
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("New game is waiting with the creator seated", func(t *testing.T) {
		// When: a game is created
		game := NewGame("ROOM01", ModeSolo, "p1")

		// Then: it should wait for players without a board
		assert.True(t, game.IsWaiting())
		assert.Equal(t, []string{"p1"}, game.PlayerIDs())
		assert.Nil(t, game.Board)
		assert.Empty(t, game.Turn)
	})

	t.Run("Required players depends on mode", func(t *testing.T) {
		assert.Equal(t, 2, NewGame("A", ModeSolo, "p1").RequiredPlayers())
		assert.Equal(t, 4, NewGame("B", ModeTeam, "p1").RequiredPlayers())
	})
}

func TestGame_ConfirmActiveState(t *testing.T) {
	t.Run("Returns nil when game is active", func(t *testing.T) {
		game := &Game{Status: StatusActive}

		assert.NoError(t, game.ConfirmActiveState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmActiveState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmActiveState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmActiveState()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_Join(t *testing.T) {
	t.Run("Second player starts a solo game", func(t *testing.T) {
		// Given: a waiting solo game
		game := NewGame("ROOM01", ModeSolo, "p1")

		// When: a second player joins
		started, err := game.Join("p2", ModeSolo)

		// Then: the game should become active with the creator to move
		require.NoError(t, err)
		assert.True(t, started)
		assert.True(t, game.IsActive())
		assert.NotNil(t, game.Board)
		assert.Equal(t, "p1", game.Turn)
	})

	t.Run("Team game waits for four players and assigns seats", func(t *testing.T) {
		// Given: a team game
		game := NewGame("ROOM01", ModeTeam, "p0")

		// When: two more players join
		for _, id := range []string{"p1", "p2"} {
			started, err := game.Join(id, ModeTeam)
			require.NoError(t, err)
			assert.False(t, started)
		}

		// Then: it should still be waiting
		assert.True(t, game.IsWaiting())

		// When: the fourth player joins
		started, err := game.Join("p3", ModeTeam)

		// Then: teams are assigned by seat
		require.NoError(t, err)
		assert.True(t, started)
		assert.Equal(t, []string{"p0", "p2"}, game.TeamMembers(TeamGreen))
		assert.Equal(t, []string{"p1", "p3"}, game.TeamMembers(TeamYellow))
		assert.Equal(t, TeamYellow, game.Players[3].Team)
		assert.Equal(t, map[string]Team{
			"p0": TeamGreen, "p1": TeamYellow, "p2": TeamGreen, "p3": TeamYellow,
		}, game.TeamColors())
	})

	t.Run("Rejected joins never mutate the game", func(t *testing.T) {
		tests := []struct {
			name   string
			game   func() *Game
			player string
			mode   Mode
			err    error
		}{
			{
				name:   "mode mismatch",
				game:   func() *Game { return NewGame("ROOM01", ModeSolo, "p1") },
				player: "p2",
				mode:   ModeTeam,
				err:    apperror.ErrModeMismatch,
			},
			{
				name:   "already joined",
				game:   func() *Game { return NewGame("ROOM01", ModeTeam, "p1") },
				player: "p1",
				mode:   ModeTeam,
				err:    apperror.ErrAlreadyJoined,
			},
			{
				name: "full roster",
				game: func() *Game {
					game := NewGame("ROOM01", ModeSolo, "p1")
					_, _ = game.Join("p2", ModeSolo)
					return game
				},
				player: "p3",
				mode:   ModeSolo,
				err:    apperror.ErrGameFull,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a game snapshot
				game := tt.game()
				before := *game
				players := game.PlayerIDs()

				// When: the join is rejected
				started, err := game.Join(tt.player, tt.mode)

				// Then: the error matches and nothing changed
				require.ErrorIs(t, err, tt.err)
				assert.False(t, started)
				assert.Equal(t, players, game.PlayerIDs())
				assert.Equal(t, before.Status, game.Status)
				assert.Equal(t, before.Turn, game.Turn)
			})
		}
	})
}

func TestGame_Play(t *testing.T) {
	t.Run("Ignores moves while waiting", func(t *testing.T) {
		game := NewGame("ROOM01", ModeSolo, "p1")

		_, err := game.Play("p1", 0)

		assert.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Rejects a move out of turn without mutation", func(t *testing.T) {
		// Given: an active game where p1 is to move
		game := newActiveGame(t, ModeSolo, "p1", "p2")

		// When: p2 plays
		_, err := game.Play("p2", 0)

		// Then: ErrNotYourTurn and the board is still empty
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Zero(t, game.Board.Occupied())
		assert.Equal(t, "p1", game.Turn)
	})

	t.Run("Solo turns alternate between the two players", func(t *testing.T) {
		game := newActiveGame(t, ModeSolo, "p1", "p2")

		var turns []string
		for i := 0; i < 4; i++ {
			_, err := game.Play(game.Turn, i)
			require.NoError(t, err)
			turns = append(turns, game.Turn)
		}

		assert.Equal(t, []string{"p2", "p1", "p2", "p1"}, turns)
		assert.Equal(t, 4, game.Moves)
	})

	t.Run("Team turns follow seat order", func(t *testing.T) {
		game := newActiveGame(t, ModeTeam, "p0", "p1", "p2", "p3")

		var turns []string
		for i := 0; i < 5; i++ {
			_, err := game.Play(game.Turn, i%Columns)
			require.NoError(t, err)
			turns = append(turns, game.Turn)
		}

		assert.Equal(t, []string{"p1", "p2", "p3", "p0", "p1"}, turns)
	})

	t.Run("Column full keeps the turn", func(t *testing.T) {
		// Given: column 0 filled by alternating players
		game := newActiveGame(t, ModeSolo, "p1", "p2")
		for i := 0; i < Rows; i++ {
			_, err := game.Play(game.Turn, 0)
			require.NoError(t, err)
		}
		turn := game.Turn

		// When: the current player drops into column 0
		_, err := game.Play(turn, 0)

		// Then: ErrColumnFull and the same player keeps the turn
		require.ErrorIs(t, err, apperror.ErrColumnFull)
		assert.Equal(t, turn, game.Turn)
		assert.Equal(t, Rows, game.Moves)
	})

	t.Run("Vertical solo win finishes the game", func(t *testing.T) {
		// Given: p1 stacks column 0 while p2 plays elsewhere
		game := newActiveGame(t, ModeSolo, "p1", "p2")
		moves := []int{0, 1, 0, 2, 0, 3}
		for _, column := range moves {
			outcome, err := game.Play(game.Turn, column)
			require.NoError(t, err)
			require.False(t, outcome.HasWinner())
		}

		// When: p1 drops the fourth token
		outcome, err := game.Play("p1", 0)

		// Then: p1 wins and the game is finished
		require.NoError(t, err)
		assert.Equal(t, "p1", outcome.Winner)
		assert.True(t, game.IsFinished())
		assert.Equal(t, ReasonWin, game.Reason)
		assert.Equal(t, "p1", game.Winner)
		assert.Empty(t, game.Turn)

		_, err = game.Play("p2", 4)
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Team win names the triggering player", func(t *testing.T) {
		// Given: green stacks column 3 on its turns, yellow fills elsewhere
		game := newActiveGame(t, ModeTeam, "p0", "p1", "p2", "p3")
		moves := []int{3, 0, 3, 1, 3, 0}
		for _, column := range moves {
			_, err := game.Play(game.Turn, column)
			require.NoError(t, err)
		}

		// When: p2 lands green's fourth token
		require.Equal(t, "p2", game.Turn)
		outcome, err := game.Play("p2", 3)

		// Then: green wins with p2 as the trigger
		require.NoError(t, err)
		assert.Equal(t, "p2", outcome.Winner)
		assert.Equal(t, TeamGreen, outcome.Team)
		assert.Equal(t, TeamGreen, game.WinnerTeam)
		assert.True(t, game.IsFinished())
	})

	t.Run("Board filled without alignment is a draw", func(t *testing.T) {
		// Given: a game whose board misses a single cell of a drawn pattern
		game := newActiveGame(t, ModeSolo, "a", "b")
		full := drawBoard("a", "b")
		last := full[0][6]
		*game.Board = *full
		game.Board[0][6] = EmptyCell
		game.Turn = last

		// When: the last token is dropped
		outcome, err := game.Play(last, 6)

		// Then: the game ends as a draw
		require.NoError(t, err)
		assert.True(t, outcome.IsDraw())
		assert.True(t, game.IsFinished())
		assert.Equal(t, ReasonDraw, game.Reason)
		assert.Empty(t, game.Winner)
	})
}

func TestGame_Leave(t *testing.T) {
	t.Run("Opponent wins when a solo player leaves", func(t *testing.T) {
		game := newActiveGame(t, ModeSolo, "p1", "p2")

		outcome, err := game.Leave("p2")

		require.NoError(t, err)
		assert.Equal(t, "p1", outcome.Winner)
		assert.Equal(t, ReasonForfeit, game.Reason)
		assert.True(t, game.IsFinished())
	})

	t.Run("Leaving team forfeits to the other team", func(t *testing.T) {
		// Given: an active team game
		game := newActiveGame(t, ModeTeam, "p0", "p1", "p2", "p3")

		// When: a green player leaves
		outcome, err := game.Leave("p2")

		// Then: yellow wins, named by its lowest seat
		require.NoError(t, err)
		assert.Equal(t, TeamYellow, outcome.Team)
		assert.Equal(t, "p1", outcome.Winner)
		assert.Equal(t, []string{"p0", "p1", "p3"}, game.Others("p2"))
	})

	t.Run("Leaving a waiting game abandons it without winner", func(t *testing.T) {
		game := NewGame("ROOM01", ModeTeam, "p0")
		_, err := game.Join("p1", ModeTeam)
		require.NoError(t, err)

		outcome, err := game.Leave("p0")

		require.NoError(t, err)
		assert.False(t, outcome.HasWinner())
		assert.Equal(t, ReasonAbandoned, game.Reason)
		assert.True(t, game.IsFinished())
	})

	t.Run("Stranger cannot leave", func(t *testing.T) {
		game := newActiveGame(t, ModeSolo, "p1", "p2")

		_, err := game.Leave("p9")

		assert.ErrorIs(t, err, apperror.ErrNotInGame)
		assert.True(t, game.IsActive())
	})
}

func TestGame_Result(t *testing.T) {
	game := newActiveGame(t, ModeSolo, "p1", "p2")
	_, err := game.Leave("p1")
	require.NoError(t, err)

	result := game.Result()

	assert.Equal(t, "ROOM01", result.RoomID)
	assert.Equal(t, ModeSolo, result.Mode)
	assert.Equal(t, []string{"p1", "p2"}, result.Players)
	assert.Equal(t, "p2", result.Winner)
	assert.Equal(t, ReasonForfeit, result.Reason)
	assert.False(t, result.FinishedAt.IsZero())
}
