package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// NoMove is returned by BestMove for a full board.
const NoMove = -1

const winScore = 10

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	BestMove(board entity.Board, mark string) int
	MakeTurn(game *entity.Game) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays the optimal cell for the computer entry of the game and returns it.
func (that *botService) MakeTurn(game *entity.Game) (int, error) {
	botPlayer := game.Bot()
	if botPlayer == nil {
		return NoMove, ErrBotNotFound
	}

	cell := that.BestMove(game.Board, botPlayer.Mark)
	if cell == NoMove {
		return NoMove, ErrNoAvailableMoves
	}

	if err := game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}

// BestMove runs a full-depth minimax for mark. Equal scores keep the lowest cell index.
// The board is taken by value, so the caller's board is never touched.
func (that *botService) BestMove(board entity.Board, mark string) int {
	bestScore := math.MinInt
	move := NoMove

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = mark

		if score := minimax(next, 0, false, mark); score > bestScore {
			bestScore = score
			move = cell
		}
	}

	return move
}

// minimax scores a position for botMark: faster wins and slower losses score better.
func minimax(board entity.Board, depth int, maximizing bool, botMark string) int {
	result := entity.DetermineResult(board)
	switch {
	case result == botMark:
		return winScore - depth
	case result == entity.Draw:
		return 0
	case result != "":
		return depth - winScore
	}

	mark := botMark
	bestScore := math.MinInt
	if !maximizing {
		mark = entity.Opponent(botMark)
		bestScore = math.MaxInt
	}

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = mark

		score := minimax(next, depth+1, !maximizing, botMark)
		if maximizing {
			bestScore = max(bestScore, score)
		} else {
			bestScore = min(bestScore, score)
		}
	}

	return bestScore
}
