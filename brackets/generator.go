package brackets

import "github.com/Dosada05/swiss-tournament/models"

type GeneratePairingsParams struct {
	Round      int
	Ranking    []models.Standing
	ByeHistory ByeSet
}

// PairingGenerator produces one round of pairings from a ranking. Implementations
// must not mutate the bye history; a chosen bye is returned to the caller.
type PairingGenerator interface {
	GeneratePairings(params GeneratePairingsParams) (*models.RoundPairings, error)

	GetName() string
}
