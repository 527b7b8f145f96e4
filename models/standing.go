package models

// Standing is derived from the match history on every request and never stored.
type Standing struct {
	Rank          int     `json:"rank"`
	PlayerID      int     `json:"player_id"`
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	Points        int     `json:"points"`
	MatchesPlayed int     `json:"matches_played"`
	Opponents     int     `json:"opponents"`     // distinct opponents faced
	OpponentWins  int     `json:"opponent_wins"` // combined wins of those opponents
	OMW           float64 `json:"omw"`
}
