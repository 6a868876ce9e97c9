package services

import (
	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
)

func publish(p brackets.Publisher, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	p.BroadcastToRoom(models.TournamentRoom, brackets.WebSocketMessage{
		Type:    eventType,
		Payload: payload,
		RoomID:  models.TournamentRoom,
	})
}
