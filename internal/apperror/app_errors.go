package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrGameNotOver  = errors.New("game is not over yet")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrNotAPlayer   = errors.New("connection holds no mark")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidJoin  = errors.New("room and name are required")
	ErrInvalidChat  = errors.New("malformed chat message")
)

// IsRejection reports whether err is a user input rejection that is answered with a
// message to the originating connection only.
func IsRejection(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrGameNotOver) ||
		errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrNotAPlayer) ||
		errors.Is(err, ErrInvalidCell) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidJoin) ||
		errors.Is(err, ErrInvalidChat)
}
