package domain

// Player is a seated participant and the rank they are currently on.
type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name,omitempty"`
	Level Number   `json:"level"`
}

// BidLevel is the number a player may declare with. Players without a
// recorded level start on 2.
func (p Player) BidLevel() Number {
	if p.Level.Valid() {
		return p.Level
	}
	return MinNumber
}

// FindPlayer returns the player with the given id.
func FindPlayer(players []Player, id PlayerID) (Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
