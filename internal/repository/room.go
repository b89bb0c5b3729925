package repository

import (
	"errors"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type RoomRepository interface {
	GetOrCreate(id, gameType string) *entity.Game
	GetByID(id string) (*entity.Game, error)
}

// memoryRooms keeps every room for the lifetime of the process.
type memoryRooms struct {
	botName string

	mu    sync.RWMutex
	games map[string]*entity.Game
}

func NewRoomRepository(botName string) RoomRepository {
	return &memoryRooms{
		botName: botName,
		games:   make(map[string]*entity.Game),
	}
}

// GetOrCreate returns the room with id, creating it with gameType when it does not exist.
// The game type of an existing room never changes.
func (that *memoryRooms) GetOrCreate(id, gameType string) *entity.Game {
	that.mu.RLock()
	game, ok := that.games[id]
	that.mu.RUnlock()

	if ok {
		return game
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	// another join may have created it between the two locks
	if game, ok = that.games[id]; ok {
		return game
	}

	game = entity.NewGame(id, gameType, that.botName)
	that.games[id] = game

	return game
}

func (that *memoryRooms) GetByID(id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}

	return game, nil
}
