package entity

import (
	"fmt"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

const (
	Rows    = 6
	Columns = 7

	EmptyCell = ""
)

// Board is a Rows x Columns grid. Row 0 is the top row, tokens fall towards Rows-1.
type Board [Rows][Columns]string

func NewBoard() *Board {
	return &Board{}
}

// Drop puts the player's token on the lowest empty cell of the column and returns its row.
func (that *Board) Drop(column int, playerID string) (int, error) {
	if column < 0 || column >= Columns {
		return 0, fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column)
	}

	for row := Rows - 1; row >= 0; row-- {
		if that[row][column] == EmptyCell {
			that[row][column] = playerID
			return row, nil
		}
	}

	return 0, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
}

// CellAt returns the occupant of the cell, EmptyCell when it is empty or out of the grid.
func (that *Board) CellAt(row, column int) string {
	if !inBounds(row, column) {
		return EmptyCell
	}

	return that[row][column]
}

func (that *Board) IsColumnFull(column int) bool {
	return that.CellAt(0, column) != EmptyCell
}

// IsFull reports whether no column accepts another token.
func (that *Board) IsFull() bool {
	for column := 0; column < Columns; column++ {
		if !that.IsColumnFull(column) {
			return false
		}
	}

	return true
}

func (that *Board) Occupied() int {
	count := 0
	for row := range that {
		for column := range that[row] {
			if that[row][column] != EmptyCell {
				count++
			}
		}
	}

	return count
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}
