package entity

import "encoding/json"

// Outbound event names.
const (
	ActionAssign      = "assign"
	ActionGameState   = "gameState"
	ActionMessage     = "message"
	ActionChatMessage = "chatMessage"
)

type JoinRequest struct {
	Room     string `json:"room"`
	Name     string `json:"name"`
	GameType string `json:"gameType"`
}

type Assignment struct {
	Role     string `json:"role"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Room     string `json:"room"`
	GameType string `json:"gameType"`
}

type ChatLine struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

// Empty marks and results go out as null.
func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func (that Player) MarshalJSON() ([]byte, error) {
	type player Player
	return json.Marshal(struct {
		player
		Mark *string `json:"symbol"`
	}{player(that), nullable(that.Mark)})
}

func (that Assignment) MarshalJSON() ([]byte, error) {
	type assignment Assignment
	return json.Marshal(struct {
		assignment
		Symbol *string `json:"symbol"`
	}{assignment(that), nullable(that.Symbol)})
}

func (that GameState) MarshalJSON() ([]byte, error) {
	type gameState GameState
	return json.Marshal(struct {
		gameState
		Winner *string `json:"winner"`
	}{gameState(that), nullable(that.Winner)})
}
