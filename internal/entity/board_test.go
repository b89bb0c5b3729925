package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineResult(t *testing.T) {
	t.Run("Returns the mark for every winning line", func(t *testing.T) {
		for _, mark := range []string{PlayerX, PlayerO} {
			for _, combo := range WinCombos {
				// Given: a board where only the cells of one line hold the mark
				var board Board
				for _, cell := range combo {
					board[cell] = mark
				}

				// When: determining the result
				result := DetermineResult(board)

				// Then: the mark wins
				assert.Equal(t, mark, result, "line %v", combo)
			}
		}
	})

	t.Run("Returns Draw for a full board without a line", func(t *testing.T) {
		// Given: a full board with alternating marks and no three in a row
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When: determining the result
		result := DetermineResult(board)

		// Then: the game is a draw
		assert.Equal(t, Draw, result)
	})

	t.Run("Full board with a line is a win, not a draw", func(t *testing.T) {
		// Given: a full board where X completed the diagonal on the last move
		board := Board{
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerX,
		}

		// Then: X wins
		assert.Equal(t, PlayerX, DetermineResult(board))
	})

	t.Run("Returns empty result while the game can continue", func(t *testing.T) {
		// Given: a board that is neither won nor full
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// Then: there is no result yet
		assert.Equal(t, "", DetermineResult(board))
		assert.Equal(t, "", DetermineResult(Board{}))
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		board := Board{PlayerX, PlayerX, PlayerO}

		assert.Equal(t, "", DetermineResult(board))
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	board := Board{PlayerX, EmptyCell, PlayerO, EmptyCell, EmptyCell, PlayerX, PlayerO, PlayerX, EmptyCell}

	assert.Equal(t, []int{1, 3, 4, 8}, board.EmptyCells())
	assert.Len(t, Board{}.EmptyCells(), 9)
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, PlayerO, Opponent(PlayerX))
	assert.Equal(t, PlayerX, Opponent(PlayerO))
}
