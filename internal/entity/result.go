package entity

import "time"

// Result is the archived summary of a finished game.
type Result struct {
	RoomID     string    `json:"roomId"`
	Mode       Mode      `json:"mode"`
	Players    []string  `json:"players"`
	Winner     string    `json:"winner,omitempty"`
	Team       Team      `json:"team,omitempty"`
	Reason     string    `json:"reason"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finishedAt"`
}
