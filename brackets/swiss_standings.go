package brackets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/swiss-tournament/models"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// RankingKey selects the primary sort scalar of a ranking. Every other field of
// the standing is computed regardless of the key.
type RankingKey string

const (
	RankByPoints RankingKey = "points"
	RankByWins   RankingKey = "wins"
)

func ParseRankingKey(s string) (RankingKey, error) {
	switch RankingKey(strings.ToLower(strings.TrimSpace(s))) {
	case RankByPoints:
		return RankByPoints, nil
	case RankByWins:
		return RankByWins, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrUnknownRankingKey, s, RankByPoints, RankByWins)
	}
}

func (k RankingKey) Score(s models.Standing) int {
	if k == RankByWins {
		return s.Wins
	}
	return s.Points
}

type tally struct {
	standing  models.Standing
	opponents map[int]struct{}
}

// ComputeStandings derives one standing per roster player from the match history
// and returns them in ranking order: score (per key), then OMW, then matches
// played, all descending, then ascending player ID.
func ComputeStandings(players []models.Player, matches []models.MatchResult, key RankingKey) ([]models.Standing, error) {
	if key != RankByPoints && key != RankByWins {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRankingKey, key)
	}

	index := make(map[int]*tally, len(players))
	for _, p := range players {
		if _, exists := index[p.ID]; exists {
			return nil, fmt.Errorf("%w: roster lists player %d twice", ErrDuplicatePlayer, p.ID)
		}
		index[p.ID] = &tally{
			standing:  models.Standing{PlayerID: p.ID, Name: p.Name},
			opponents: make(map[int]struct{}),
		}
	}

	for i, m := range matches {
		if m.WinnerID == m.LoserID {
			return nil, fmt.Errorf("%w: match %d lists player %d on both sides", ErrSelfMatch, i, m.WinnerID)
		}
		winner, ok := index[m.WinnerID]
		if !ok {
			return nil, fmt.Errorf("%w: match %d winner %d", ErrUnknownPlayer, i, m.WinnerID)
		}
		loser, ok := index[m.LoserID]
		if !ok {
			return nil, fmt.Errorf("%w: match %d loser %d", ErrUnknownPlayer, i, m.LoserID)
		}

		if m.IsDraw {
			winner.standing.Draws++
			loser.standing.Draws++
		} else {
			winner.standing.Wins++
			loser.standing.Losses++
		}
		winner.opponents[m.LoserID] = struct{}{}
		loser.opponents[m.WinnerID] = struct{}{}
	}

	standings := make([]models.Standing, 0, len(players))
	for _, p := range players {
		t := index[p.ID]
		s := t.standing
		s.Points = pointsPerWin*s.Wins + pointsPerDraw*s.Draws
		s.MatchesPlayed = s.Wins + s.Losses + s.Draws
		s.Opponents = len(t.opponents)
		for opponentID := range t.opponents {
			s.OpponentWins += index[opponentID].standing.Wins
		}
		if s.Opponents > 0 {
			s.OMW = float64(s.OpponentWins) / float64(s.Opponents)
		}
		standings = append(standings, s)
	}

	sort.Slice(standings, func(i, j int) bool {
		return rankedBefore(standings[i], standings[j], key)
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

func rankedBefore(a, b models.Standing, key RankingKey) bool {
	if sa, sb := key.Score(a), key.Score(b); sa != sb {
		return sa > sb
	}
	if c := compareOMW(a, b); c != 0 {
		return c > 0
	}
	if a.MatchesPlayed != b.MatchesPlayed {
		return a.MatchesPlayed > b.MatchesPlayed
	}
	return a.PlayerID < b.PlayerID
}

// compareOMW compares OpponentWins/Opponents exactly. A player with no opponents
// has OMW 0, represented as 0/1.
func compareOMW(a, b models.Standing) int {
	an, ad := a.OpponentWins, a.Opponents
	bn, bd := b.OpponentWins, b.Opponents
	if ad == 0 {
		an, ad = 0, 1
	}
	if bd == 0 {
		bn, bd = 0, 1
	}
	l, r := an*bd, bn*ad
	switch {
	case l > r:
		return 1
	case l < r:
		return -1
	default:
		return 0
	}
}
