package brackets

import "github.com/Dosada05/swiss-tournament/models"

// ByeSet answers "has this player ever received a bye". Only membership is
// needed, so iteration order is irrelevant.
type ByeSet map[int]struct{}

func NewByeSet(playerIDs ...int) ByeSet {
	s := make(ByeSet, len(playerIDs))
	for _, id := range playerIDs {
		s.Add(id)
	}
	return s
}

func ByeSetFromRecords(records []*models.ByeRecord) ByeSet {
	s := make(ByeSet, len(records))
	for _, r := range records {
		if r != nil {
			s.Add(r.PlayerID)
		}
	}
	return s
}

func (s ByeSet) Has(playerID int) bool {
	_, ok := s[playerID]
	return ok
}

func (s ByeSet) Add(playerID int) {
	s[playerID] = struct{}{}
}

func (s ByeSet) Len() int {
	return len(s)
}
