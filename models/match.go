package models

import "time"

// Match is a completed game between two distinct players. Records are
// append-only; the pair (WinnerID, LoserID) never changes after insert.
type Match struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner_id" db:"winner_id"`
	LoserID   int       `json:"loser_id" db:"loser_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Involves reports whether the match was played between a and b, in either direction.
func (m Match) Involves(a, b int) bool {
	return (m.WinnerID == a && m.LoserID == b) || (m.WinnerID == b && m.LoserID == a)
}
