package models

import "time"

type ByeRecord struct {
	PlayerID  int       `json:"player_id" db:"player_id"`
	Round     int       `json:"round" db:"round"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
