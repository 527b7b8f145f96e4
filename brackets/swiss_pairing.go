package brackets

import (
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

func (g *SwissGenerator) GeneratePairings(params GeneratePairingsParams) (*models.RoundPairings, error) {
	return GeneratePairings(params)
}

// GeneratePairings pairs the ranking top to bottom in consecutive twos. For an odd
// field the lowest-ranked player without a previous bye sits out and is returned
// as the round's bye. The bye history is only read.
func GeneratePairings(params GeneratePairingsParams) (*models.RoundPairings, error) {
	if params.Round < 1 {
		return nil, fmt.Errorf("%w: round must be positive, got %d", ErrMalformedRound, params.Round)
	}

	ranking := params.Ranking
	seen := make(map[int]struct{}, len(ranking))
	for _, s := range ranking {
		if _, dup := seen[s.PlayerID]; dup {
			return nil, fmt.Errorf("%w: player %d is ranked twice", ErrMalformedRound, s.PlayerID)
		}
		seen[s.PlayerID] = struct{}{}
	}
	for playerID := range params.ByeHistory {
		if _, ok := seen[playerID]; !ok {
			return nil, fmt.Errorf("%w: bye recorded for player %d", ErrUnknownPlayer, playerID)
		}
	}

	result := &models.RoundPairings{
		Round:    params.Round,
		Pairings: make([]models.Pairing, 0, len(ranking)/2),
	}

	byeIdx := -1
	if len(ranking)%2 == 1 {
		byeIdx = selectByeCandidate(ranking, params.ByeHistory)
		if byeIdx < 0 {
			return nil, fmt.Errorf("%w: %d players, %d prior byes", ErrUnsatisfiableBye, len(ranking), params.ByeHistory.Len())
		}
		bye := ranking[byeIdx]
		result.Bye = &models.ByeRecord{PlayerID: bye.PlayerID, Round: params.Round}
		result.ByeName = bye.Name
	}

	var pending *models.Standing
	for i := range ranking {
		if i == byeIdx {
			continue
		}
		if pending == nil {
			pending = &ranking[i]
			continue
		}
		result.Pairings = append(result.Pairings, models.Pairing{
			Round:       params.Round,
			Table:       len(result.Pairings) + 1,
			PlayerAID:   pending.PlayerID,
			PlayerAName: pending.Name,
			PlayerBID:   ranking[i].PlayerID,
			PlayerBName: ranking[i].Name,
		})
		pending = nil
	}

	return result, nil
}

// selectByeCandidate returns the index of the lowest-ranked player who has never
// had a bye, or -1 when there is none.
func selectByeCandidate(ranking []models.Standing, history ByeSet) int {
	for i := len(ranking) - 1; i >= 0; i-- {
		if !history.Has(ranking[i].PlayerID) {
			return i
		}
	}
	return -1
}
