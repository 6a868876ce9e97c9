package brackets

import (
	"sort"

	"github.com/Dosada05/swiss-tournament/models"
)

// CalculateStandings counts wins and matches played for every player and
// orders the result by wins descending, then by player id ascending.
// Matches that reference unknown players are ignored.
func CalculateStandings(players []*models.Player, matches []*models.Match) []models.StandingEntry {
	index := make(map[int]*models.StandingEntry, len(players))
	standings := make([]models.StandingEntry, 0, len(players))
	for _, p := range players {
		if p == nil {
			continue
		}
		index[p.ID] = &models.StandingEntry{PlayerID: p.ID, Name: p.Name}
	}

	for _, m := range matches {
		if m == nil {
			continue
		}
		winner, okW := index[m.WinnerID]
		loser, okL := index[m.LoserID]
		if !okW || !okL {
			continue
		}
		winner.Wins++
		winner.Matches++
		loser.Matches++
	}

	for _, entry := range index {
		standings = append(standings, *entry)
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	return standings
}
