package models

// Типы событий, рассылаемых через WebSocket.
const (
	EventPlayerRegistered = "PLAYER_REGISTERED"
	EventMatchReported    = "MATCH_REPORTED"
	EventStandingsUpdated = "STANDINGS_UPDATED"
	EventTournamentReset  = "TOURNAMENT_RESET"
)

// TournamentRoom is the single hub room every client joins.
const TournamentRoom = "tournament"
