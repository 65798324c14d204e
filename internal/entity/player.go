package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
)

type Mode string

const (
	ModeSolo Mode = "solo"
	ModeTeam Mode = "team"
)

// ParseMode accepts the wire names and their 1v1/2v2 aliases.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ModeSolo), "1v1":
		return ModeSolo, nil
	case string(ModeTeam), "2v2":
		return ModeTeam, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, value)
	}
}

func (that Mode) RequiredPlayers() int {
	if that == ModeTeam {
		return 4
	}

	return 2
}

func (that Mode) IsTeam() bool {
	return that == ModeTeam
}

type Team string

const (
	TeamNone   Team = ""
	TeamGreen  Team = "green"
	TeamYellow Team = "yellow"
)

// SeatTeam maps a roster position to its team: even seats are green, odd seats yellow.
func SeatTeam(seat int) Team {
	if seat < 0 || seat >= ModeTeam.RequiredPlayers() {
		return TeamNone
	}

	if seat%2 == 0 {
		return TeamGreen
	}

	return TeamYellow
}

func (that Team) Opponent() Team {
	switch that {
	case TeamGreen:
		return TeamYellow
	case TeamYellow:
		return TeamGreen
	default:
		return TeamNone
	}
}

type Player struct {
	ID   string `json:"id"`
	Team Team   `json:"team,omitempty"`
}
