package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
)

const (
	spectatorName    = "Spectator"
	unknownUserName  = "A user"
	bookkeepingLimit = 5 * time.Second
)

type roomRepo interface {
	GetOrCreate(id, gameType string) *entity.Game
	GetByID(id string) (*entity.Game, error)
}

type leaderboardRepo interface {
	Increment(ctx context.Context, name string) error
	Snapshot(ctx context.Context) (map[string]int, error)
}

type botService interface {
	MakeTurn(game *entity.Game) (int, error)
}

// notifier delivers one event to one connection. It must not block.
type notifier interface {
	Send(connID, action string, payload any)
}

type GameManager struct {
	logger      *slog.Logger
	rooms       roomRepo
	leaderboard leaderboardRepo
	bot         botService
	notifier    notifier

	computerMoveDelay time.Duration

	membersMutex sync.RWMutex
	members      map[string]string // connID -> room id
}

func NewGameManager(
	logger *slog.Logger,
	rooms roomRepo,
	leaderboard leaderboardRepo,
	bot botService,
	notifier notifier,
	computerMoveDelay time.Duration,
) *GameManager {
	return &GameManager{
		logger:            logger.With("component", "game_manager"),
		rooms:             rooms,
		leaderboard:       leaderboard,
		bot:               bot,
		notifier:          notifier,
		computerMoveDelay: computerMoveDelay,
		members:           make(map[string]string),
	}
}

// JoinRoom puts the connection into a room, creating the room on first reference.
// A connection that already sits in another room leaves it first.
func (that *GameManager) JoinRoom(ctx context.Context, connID string, req entity.JoinRequest) error {
	if req.Room == "" || req.Name == "" {
		return apperror.ErrInvalidJoin
	}

	if req.GameType != entity.ComputerType {
		req.GameType = entity.MultiplayerType
	}

	if current, ok := that.roomOf(connID); ok && current != req.Room {
		that.LeaveRoom(ctx, connID)
	}

	game := that.rooms.GetOrCreate(req.Room, req.GameType)

	game.Lock()
	defer game.Unlock()

	player := game.AddMember(connID, req.Name)
	that.setRoom(connID, req.Room)

	that.notifier.Send(connID, entity.ActionAssign, entity.Assignment{
		Role:     player.Role(),
		Symbol:   player.Mark,
		Name:     player.Name,
		Room:     req.Room,
		GameType: req.GameType,
	})
	that.notifier.Send(connID, entity.ActionGameState, game.Snapshot())

	announcement := fmt.Sprintf("%s has joined as %s.", player.Name, player.Role())
	if player.IsPlayer() {
		announcement = fmt.Sprintf("%s has joined as %s (%s).", player.Name, player.Role(), player.Mark)
	}
	that.broadcast(game, entity.ActionMessage, announcement)

	that.logger.Info("player joined room", "room", req.Room, "connID", connID, "role", player.Role(), "mark", player.Mark)

	return nil
}

// MakeTurn applies a move of the connection's mark. Rejections leave the room untouched.
func (that *GameManager) MakeTurn(ctx context.Context, connID string, cell int) error {
	game, ok := that.gameOf(connID)
	if !ok {
		return nil
	}

	game.Lock()
	defer game.Unlock()

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	player := game.Member(connID)
	if player == nil || !player.IsPlayer() {
		return apperror.ErrNotAPlayer
	}

	if err := game.MakeTurn(player.Mark, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.recordWin(ctx, game)
	that.broadcast(game, entity.ActionGameState, game.Snapshot())

	if game.IsComputerTurn() {
		that.scheduleComputerTurn(game)
	}

	return nil
}

// SendChat relays text verbatim to the whole room.
func (that *GameManager) SendChat(_ context.Context, connID, text string) error {
	game, ok := that.gameOf(connID)
	if !ok {
		return nil
	}

	game.Lock()
	defer game.Unlock()

	name := spectatorName
	if player := game.Member(connID); player != nil {
		name = player.Name
	}

	that.broadcast(game, entity.ActionChatMessage, entity.ChatLine{Name: name, Msg: text})

	return nil
}

// Restart starts a new round in a finished room.
func (that *GameManager) Restart(_ context.Context, connID string) error {
	game, ok := that.gameOf(connID)
	if !ok {
		return nil
	}

	game.Lock()
	defer game.Unlock()

	if !game.IsFinished() {
		return apperror.ErrGameNotOver
	}

	game.Reset()

	that.broadcast(game, entity.ActionMessage, "Game has been restarted!")
	that.broadcast(game, entity.ActionGameState, game.Snapshot())

	return nil
}

// LeaveRoom removes the connection from its room and resets the room for whoever stays.
func (that *GameManager) LeaveRoom(_ context.Context, connID string) {
	roomID, ok := that.takeRoom(connID)
	if !ok {
		return
	}

	game, err := that.rooms.GetByID(roomID)
	if err != nil {
		that.logger.Warn("room of leaving connection not found", "room", roomID, "error", err)
		return
	}

	game.Lock()
	defer game.Unlock()

	name := unknownUserName
	if player := game.RemoveMember(connID); player != nil {
		name = player.Name
	}

	game.Reset()

	that.broadcast(game, entity.ActionMessage, name+" has disconnected. Game will reset.")
	that.broadcast(game, entity.ActionGameState, game.Snapshot())

	that.logger.Info("player left room", "room", roomID, "connID", connID)
}

func (that *GameManager) Leaderboard(ctx context.Context) (map[string]int, error) {
	snapshot, err := that.leaderboard.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return snapshot, nil
}

// scheduleComputerTurn defers the computer reply so clients can render the human move.
// The room lock must be held.
func (that *GameManager) scheduleComputerTurn(game *entity.Game) {
	roomID, round := game.ID, game.Round

	game.SetPendingMove(time.AfterFunc(that.computerMoveDelay, func() {
		that.playComputerTurn(roomID, round)
	}))
}

func (that *GameManager) playComputerTurn(roomID string, round uint64) {
	log := that.logger.With("method", "playComputerTurn", "room", roomID)

	game, err := that.rooms.GetByID(roomID)
	if err != nil {
		log.Error("room not found", "error", err)
		return
	}

	game.Lock()
	defer game.Unlock()

	// the room was reset while the timer was running
	if game.Round != round {
		log.Debug("discarding stale computer move", "round", round, "current", game.Round)
		return
	}

	game.ClearPendingMove()

	if !game.IsComputerTurn() {
		log.Debug("discarding computer move, not its turn", "turn", game.Turn)
		return
	}

	cell, err := that.bot.MakeTurn(game)
	if err != nil {
		log.Error("computer failed to move", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), bookkeepingLimit)
	defer cancel()

	that.recordWin(ctx, game)
	that.broadcast(game, entity.ActionGameState, game.Snapshot())

	log.Debug("computer moved", "cell", cell)
}

// recordWin credits the winning human. Draws and computer wins are not recorded.
func (that *GameManager) recordWin(ctx context.Context, game *entity.Game) {
	if !game.HasHumanWinner() {
		return
	}

	winner := game.HumanWithMark(game.Winner)
	if err := that.leaderboard.Increment(ctx, winner.Name); err != nil {
		that.logger.Error("failed to record win", "room", game.ID, "player", winner.Name, "error", err)
		return
	}

	that.logger.Info("game won", "room", game.ID, "player", winner.Name, "mark", game.Winner)
}

// broadcast sends an event to every human on the roster. The room lock must be held.
func (that *GameManager) broadcast(game *entity.Game, action string, payload any) {
	for _, member := range game.Members() {
		that.notifier.Send(member.ID, action, payload)
	}
}

func (that *GameManager) gameOf(connID string) (*entity.Game, bool) {
	roomID, ok := that.roomOf(connID)
	if !ok {
		that.logger.Debug("event from connection outside of a room", "connID", connID)
		return nil, false
	}

	game, err := that.rooms.GetByID(roomID)
	if errors.Is(err, repository.ErrGameNotFound) {
		that.logger.Debug("event for unknown room", "room", roomID)
		return nil, false
	}

	return game, err == nil
}

func (that *GameManager) roomOf(connID string) (string, bool) {
	that.membersMutex.RLock()
	defer that.membersMutex.RUnlock()

	roomID, ok := that.members[connID]
	return roomID, ok
}

func (that *GameManager) setRoom(connID, roomID string) {
	that.membersMutex.Lock()
	defer that.membersMutex.Unlock()

	that.members[connID] = roomID
}

func (that *GameManager) takeRoom(connID string) (string, bool) {
	that.membersMutex.Lock()
	defer that.membersMutex.Unlock()

	roomID, ok := that.members[connID]
	delete(that.members, connID)

	return roomID, ok
}
