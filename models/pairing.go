package models

type Pairing struct {
	Round       int    `json:"round"`
	Table       int    `json:"table"`
	PlayerAID   int    `json:"player_a_id"`
	PlayerAName string `json:"player_a_name"`
	PlayerBID   int    `json:"player_b_id"`
	PlayerBName string `json:"player_b_name"`
}

// RoundPairings is the output of one pairing pass. Bye is nil when the field
// is even; otherwise it must be persisted by the caller.
type RoundPairings struct {
	Round    int        `json:"round"`
	Pairings []Pairing  `json:"pairings"`
	Bye      *ByeRecord `json:"bye,omitempty"`
	ByeName  string     `json:"bye_name,omitempty"`
}
