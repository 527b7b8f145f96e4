package models

import "time"

// MatchResult is a recorded outcome. When IsDraw is set the two slots are
// symmetric and both players are credited with a draw.
type MatchResult struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner_id" db:"winner_id"`
	LoserID   int       `json:"loser_id" db:"loser_id"`
	IsDraw    bool      `json:"is_draw" db:"is_draw"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Involves reports whether the player took part in the match, in either slot.
func (m MatchResult) Involves(playerID int) bool {
	return m.WinnerID == playerID || m.LoserID == playerID
}

// Opponent returns the other participant of the match.
func (m MatchResult) Opponent(playerID int) int {
	if m.WinnerID == playerID {
		return m.LoserID
	}
	return m.WinnerID
}
