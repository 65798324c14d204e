package entity

const WinLength = 4

// directions are right, down, down-right and down-left. Their mirrors are
// covered because every cell of the board is used as a run start.
var directions = [...][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// Outcome is the terminal verdict for a board. Team is set in team mode only.
// BoardFull without a winner means no further move is possible.
type Outcome struct {
	Winner    string `json:"winner,omitempty"`
	Team      Team   `json:"team,omitempty"`
	BoardFull bool   `json:"boardFull,omitempty"`
}

func (that Outcome) HasWinner() bool {
	return that.Winner != ""
}

func (that Outcome) IsDraw() bool {
	return !that.HasWinner() && that.BoardFull
}

// Evaluate scans the board row-major and returns the first run of WinLength
// matching cells. In solo mode cells match by player id, in team mode by the
// seat team of roster; players without a seat are skipped.
func Evaluate(board *Board, mode Mode, roster []string) Outcome {
	owner := ownerOf(mode, roster)

	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			occupant := board[row][column]
			if occupant == EmptyCell {
				continue
			}

			key, ok := owner(occupant)
			if !ok {
				continue
			}

			for _, dir := range directions {
				if runLength(board, row, column, dir, key, owner) < WinLength {
					continue
				}

				outcome := Outcome{Winner: occupant}
				if mode.IsTeam() {
					outcome.Team = Team(key)
				}

				return outcome
			}
		}
	}

	return Outcome{BoardFull: board.IsFull()}
}

// runLength counts matching cells from (row, column) along dir, capped at WinLength.
func runLength(board *Board, row, column int, dir [2]int, key string, owner func(string) (string, bool)) int {
	count := 0

	for count < WinLength && inBounds(row, column) {
		cellKey, ok := owner(board[row][column])
		if !ok || cellKey != key {
			break
		}

		count++
		row += dir[0]
		column += dir[1]
	}

	return count
}

func ownerOf(mode Mode, roster []string) func(string) (string, bool) {
	if !mode.IsTeam() {
		return func(id string) (string, bool) {
			return id, id != EmptyCell
		}
	}

	teams := make(map[string]Team, len(roster))
	for seat, id := range roster {
		if team := SeatTeam(seat); team != TeamNone {
			teams[id] = team
		}
	}

	return func(id string) (string, bool) {
		team, ok := teams[id]
		return string(team), ok
	}
}
