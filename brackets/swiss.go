package brackets

import "github.com/Dosada05/swiss-tournament/models"

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

func (g *SwissGenerator) GeneratePairings(ranking []models.StandingEntry, hasPlayed HasPlayedFunc) []models.Pairing {
	return SwissPairings(ranking, hasPlayed)
}

// SwissPairings pairs every player with the nearest lower-ranked player who is
// still free and whom they have not met yet. Players for whom no such opponent
// exists are left out of the result; there is no bye.
//
// ranking must be ordered by rank and must not contain duplicate ids.
func SwissPairings(ranking []models.StandingEntry, hasPlayed HasPlayedFunc) []models.Pairing {
	pairings := make([]models.Pairing, 0, len(ranking)/2)
	paired := make(map[int]struct{}, len(ranking))

	for i := range ranking {
		p := ranking[i]
		if _, done := paired[p.PlayerID]; done {
			continue
		}

		for j := i + 1; j < len(ranking); j++ {
			q := ranking[j]
			if _, done := paired[q.PlayerID]; done {
				continue
			}
			if hasPlayed(p.PlayerID, q.PlayerID) {
				continue
			}

			pairings = append(pairings, models.Pairing{
				Player1ID:   p.PlayerID,
				Player1Name: p.Name,
				Player2ID:   q.PlayerID,
				Player2Name: q.Name,
			})
			paired[p.PlayerID] = struct{}{}
			paired[q.PlayerID] = struct{}{}
			break
		}
	}

	return pairings
}

// UnpairedPlayers returns, in rank order, the entries of ranking that appear in
// none of the pairings.
func UnpairedPlayers(ranking []models.StandingEntry, pairings []models.Pairing) []models.StandingEntry {
	seen := make(map[int]struct{}, len(pairings)*2)
	for _, p := range pairings {
		seen[p.Player1ID] = struct{}{}
		seen[p.Player2ID] = struct{}{}
	}

	unpaired := make([]models.StandingEntry, 0)
	for _, entry := range ranking {
		if _, ok := seen[entry.PlayerID]; !ok {
			unpaired = append(unpaired, entry)
		}
	}
	return unpaired
}

// PlayedIndex answers HasPlayedFunc from a fixed list of matches.
type PlayedIndex map[[2]int]struct{}

func NewPlayedIndex(matches []*models.Match) PlayedIndex {
	idx := make(PlayedIndex, len(matches))
	for _, m := range matches {
		if m == nil {
			continue
		}
		idx[pairKey(m.WinnerID, m.LoserID)] = struct{}{}
	}
	return idx
}

func (idx PlayedIndex) HasPlayed(playerA, playerB int) bool {
	_, ok := idx[pairKey(playerA, playerB)]
	return ok
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
