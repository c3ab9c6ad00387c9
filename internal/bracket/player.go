package bracket

// Player is a tournament participant. UserID points at a portal account when
// the player registered through one; local players leave it nil.
type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	UserID *string `json:"userId"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}
