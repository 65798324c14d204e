package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingColumn = errors.New("column is required")

func (that *Server) handleCreateGame(playerID string, raw json.RawMessage) error {
	var payload createGamePayload
	if err := that.decode(playerID, raw, &payload); err != nil {
		return err
	}

	return that.manager.CreateGame(playerID, payload.Mode)
}

func (that *Server) handleJoinGame(playerID string, raw json.RawMessage) error {
	var payload joinGamePayload
	if err := that.decode(playerID, raw, &payload); err != nil {
		return err
	}

	return that.manager.JoinGame(playerID, payload.RoomID, payload.Mode)
}

func (that *Server) handlePlay(playerID string, raw json.RawMessage) error {
	var payload playPayload
	if err := that.decode(playerID, raw, &payload); err != nil {
		return err
	}

	if payload.Column == nil {
		that.sendError(playerID, errMissingColumn.Error())
		return errMissingColumn
	}

	return that.manager.Play(playerID, payload.RoomID, *payload.Column)
}

func (that *Server) handleLeaveGame(playerID string, raw json.RawMessage) error {
	var payload leaveGamePayload
	if err := that.decode(playerID, raw, &payload); err != nil {
		return err
	}

	return that.manager.LeaveGame(playerID, payload.RoomID)
}

// decode reports a missing or malformed payload to the sender.
func (that *Server) decode(playerID string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		that.sendError(playerID, errMissingPayload.Error())
		return errMissingPayload
	}

	if err := json.Unmarshal(raw, v); err != nil {
		that.sendError(playerID, "invalid payload")
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return nil
}
