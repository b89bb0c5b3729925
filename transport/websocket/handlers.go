package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type movePayload struct {
	CellIndex *int `json:"cellIndex"`
}

type chatPayload struct {
	Text string `json:"text"`
}

var rejectionTexts = []struct {
	err  error
	text string
}{
	{apperror.ErrGameFinished, "Game is over. Please restart to play again."},
	{apperror.ErrNotAPlayer, "You are not a player."},
	{apperror.ErrNotYourTurn, "Not your turn."},
	{apperror.ErrInvalidCell, "Invalid move."},
	{apperror.ErrCellOccupied, "Invalid move."},
	{apperror.ErrInvalidJoin, "Room and name are required."},
	{apperror.ErrGameNotOver, "Game is not over yet."},
	{apperror.ErrInvalidChat, "Invalid message."},
}

func (that *Server) handleJoinRoom(ctx context.Context, connID string, msg *Message) error {
	var req entity.JoinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %w", apperror.ErrInvalidJoin, err)
	}

	return that.manager.JoinRoom(ctx, connID, req)
}

func (that *Server) handleMove(ctx context.Context, connID string, msg *Message) error {
	var payload movePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %w", apperror.ErrInvalidCell, err)
	}

	if payload.CellIndex == nil {
		return fmt.Errorf("%w: cellIndex is missing", apperror.ErrInvalidCell)
	}

	return that.manager.MakeTurn(ctx, connID, *payload.CellIndex)
}

func (that *Server) handleChatMessage(ctx context.Context, connID string, msg *Message) error {
	var payload chatPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %w", apperror.ErrInvalidChat, err)
	}

	return that.manager.SendChat(ctx, connID, payload.Text)
}

func (that *Server) handleRestart(ctx context.Context, connID string, _ *Message) error {
	return that.manager.Restart(ctx, connID)
}

// reject answers a rejected action to its sender only. Other errors are logged.
func (that *Server) reject(connID, action string, err error) {
	log := that.logger.With("method", "reject", "connID", connID, "action", action)

	if !apperror.IsRejection(err) {
		log.Error("error processing message", "error", err)
		return
	}

	for _, rejection := range rejectionTexts {
		if errors.Is(err, rejection.err) {
			log.Debug("action rejected", "reason", err)
			that.hub.Send(connID, entity.ActionMessage, rejection.text)
			return
		}
	}
}
