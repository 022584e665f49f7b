package services

import (
	"context"

	"github.com/Dosada05/tournament-ops/realtime"
)

// Broadcaster рассылает сообщение подписчикам комнаты. Реализуется realtime.Hub.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// Notifier доставляет пользователю сообщение о неудачной сборке.
type Notifier interface {
	Notify(ctx context.Context, tournamentID int, message string)
}

type roomNotifier struct {
	broadcaster Broadcaster
}

// NewRoomNotifier отправляет уведомления в websocket-комнату турнира.
func NewRoomNotifier(broadcaster Broadcaster) Notifier {
	return &roomNotifier{broadcaster: broadcaster}
}

func (n *roomNotifier) Notify(_ context.Context, tournamentID int, message string) {
	room := realtime.TournamentRoom(tournamentID)
	n.broadcaster.BroadcastToRoom(room, realtime.Message{
		Type:    realtime.TypeNotification,
		Payload: map[string]string{"message": message},
		RoomID:  room,
	})
}
