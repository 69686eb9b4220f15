package websocket

import "time"

// Envelope es el sobre con el que viaja cada mensaje; el campo Type le dice
// al frontend cómo interpretarlo.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NotificationPayload es la notificación que aparece en la campanita del frontend.
type NotificationPayload struct {
	EventID   string    `json:"eventId"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	Message   string    `json:"message"`
	UnitCode  string    `json:"unitCode"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"createdAt"`
}
