package wagerdomain

import "strings"

// Player is identified by ID alone; names are for display.
type Player struct {
	ID        PlayerID `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Nickname  string   `json:"nickname,omitempty"`
}

func (p Player) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.ID.String()
	}
	return name
}
