package brackets

import "github.com/Dosada05/swiss-tournament/models"

// HasPlayedFunc reports whether two players have already met, in either
// direction. It must be read-only and answer from a consistent snapshot.
type HasPlayedFunc func(playerA, playerB int) bool

// PairingGenerator produces the next round from a ranking.
type PairingGenerator interface {
	GeneratePairings(ranking []models.StandingEntry, hasPlayed HasPlayedFunc) []models.Pairing

	GetName() string
}
