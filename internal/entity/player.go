package entity

const BotPlayerID = "AI"

const (
	RolePlayer    = "player"
	RoleSpectator = "spectator"
)

// Player is a roster entry of a room. Spectators have an empty Mark.
type Player struct {
	ID    string `json:"-"`
	Name  string `json:"name"`
	Mark  string `json:"symbol"`
	IsBot bool   `json:"isAI"`
}

func NewBotPlayer(name, mark string) *Player {
	return &Player{
		ID:    BotPlayerID,
		Name:  name,
		Mark:  mark,
		IsBot: true,
	}
}

func (that *Player) IsPlayer() bool {
	return that.Mark != ""
}

func (that *Player) Role() string {
	if that.IsPlayer() {
		return RolePlayer
	}
	return RoleSpectator
}
