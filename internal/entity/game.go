package entity

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	MultiplayerType = "multiplayer"
	ComputerType    = "ai"
)

// Game is the state of one room. All methods except Lock/Unlock expect the caller to
// hold the room lock.
type Game struct {
	ID             string
	Board          Board
	Turn           string
	Winner         string
	Status         string
	IsComputerGame bool
	BotName        string

	// Round grows on every reset so deferred work can tell it is stale.
	Round uint64

	members map[string]*Player
	pending *time.Timer
	mu      sync.Mutex
}

type GameState struct {
	Board       Board             `json:"board"`
	CurrentTurn string            `json:"currentTurn"`
	Players     map[string]Player `json:"players"`
	GameOver    bool              `json:"gameOver"`
	Winner      string            `json:"winner"`
	IsAIGame    bool              `json:"isAIGame"`
}

func NewGame(id, gameType, botName string) *Game {
	return &Game{
		ID:             id,
		Turn:           PlayerX,
		Status:         StatusOngoing,
		IsComputerGame: gameType == ComputerType,
		BotName:        botName,
		members:        make(map[string]*Player),
	}
}

func (that *Game) Lock() {
	that.mu.Lock()
}

func (that *Game) Unlock() {
	that.mu.Unlock()
}

// AddMember puts a connection on the roster and assigns its role. A connection that
// is already on the roster keeps its entry.
func (that *Game) AddMember(connID, name string) *Player {
	if member, ok := that.members[connID]; ok {
		return member
	}

	member := &Player{ID: connID, Name: name}
	that.members[connID] = member

	if that.IsComputerGame {
		if that.HumanWithMark(PlayerX) == nil {
			member.Mark = PlayerX
			if that.Bot() == nil {
				that.members[BotPlayerID] = NewBotPlayer(that.BotName, PlayerO)
			}
		}
		return member
	}

	// a seat freed by a disconnect is handed out again, X first
	switch {
	case that.holderOf(PlayerX) == nil:
		member.Mark = PlayerX
	case that.holderOf(PlayerO) == nil:
		member.Mark = PlayerO
	}

	return member
}

func (that *Game) RemoveMember(connID string) *Player {
	member, ok := that.members[connID]
	if !ok {
		return nil
	}

	delete(that.members, connID)

	return member
}

func (that *Game) Member(connID string) *Player {
	return that.members[connID]
}

// Members returns the human roster entries.
func (that *Game) Members() []*Player {
	members := make([]*Player, 0, len(that.members))
	for _, member := range that.members {
		if member.IsBot {
			continue
		}
		members = append(members, member)
	}

	return members
}

func (that *Game) Bot() *Player {
	member, ok := that.members[BotPlayerID]
	if !ok || !member.IsBot {
		return nil
	}
	return member
}

func (that *Game) HumanWithMark(mark string) *Player {
	for _, member := range that.members {
		if !member.IsBot && member.Mark == mark {
			return member
		}
	}
	return nil
}

func (that *Game) holderOf(mark string) *Player {
	for _, member := range that.members {
		if member.Mark == mark {
			return member
		}
	}
	return nil
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(that.Board) {
		return apperror.ErrInvalidCell
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	switch result := DetermineResult(that.Board); result {
	// one player wins or the board is full
	case PlayerX, PlayerO, Draw:
		that.Winner = result
		that.Status = StatusFinished
	// game continue
	default:
		that.Turn = Opponent(that.Turn)
	}
}

// Reset starts a new round with the same roster and drops a pending computer move.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Winner = ""
	that.Status = StatusOngoing
	that.Round++

	if that.pending != nil {
		that.pending.Stop()
		that.pending = nil
	}
}

func (that *Game) SetPendingMove(timer *time.Timer) {
	if that.pending != nil {
		that.pending.Stop()
	}
	that.pending = timer
}

func (that *Game) ClearPendingMove() {
	that.pending = nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

// HasHumanWinner reports a finished game won by a mark, as opposed to a draw.
func (that *Game) HasHumanWinner() bool {
	if !that.IsFinished() || that.Winner == Draw {
		return false
	}
	return that.HumanWithMark(that.Winner) != nil
}

func (that *Game) IsComputerTurn() bool {
	if !that.IsComputerGame || that.IsFinished() {
		return false
	}

	bot := that.Bot()

	return bot != nil && bot.Mark == that.Turn
}

func (that *Game) Snapshot() GameState {
	players := make(map[string]Player, len(that.members))
	for id, member := range that.members {
		players[id] = *member
	}

	return GameState{
		Board:       that.Board,
		CurrentTurn: that.Turn,
		Players:     players,
		GameOver:    that.IsFinished(),
		Winner:      that.Winner,
		IsAIGame:    that.IsComputerGame,
	}
}
