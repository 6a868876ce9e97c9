package models

// Pairing: пара игроков на следующий раунд.
type Pairing struct {
	Player1ID   int    `json:"id1"`
	Player1Name string `json:"name1"`
	Player2ID   int    `json:"id2"`
	Player2Name string `json:"name2"`
}

// PairingRound is what the API hands back for a pairing request: the pairs in
// rank order plus every ranked player that could not be paired this round.
type PairingRound struct {
	Pairings  []Pairing       `json:"pairings"`
	Unpaired  []StandingEntry `json:"unpaired"`
	Completed bool            `json:"completed"`
}
