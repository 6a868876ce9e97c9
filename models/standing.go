package models

// StandingEntry is derived from players and matches, never stored.
type StandingEntry struct {
	PlayerID int    `json:"id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Matches  int    `json:"matches"`
}

// Losses is always Matches - Wins; draws are not recorded.
func (s StandingEntry) Losses() int {
	return s.Matches - s.Wins
}
