package services

import (
	"go.uber.org/zap"

	"asset-system/pkg/constants"
	"asset-system/pkg/websocket"
)

type WebSocketNotificationServiceInterface interface {
	SendNotification(userID uint64, payload interface{}, messageType string) error
	SendNotificationToRoles(roles []constants.Role, payload interface{}, messageType string) error
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

func (s *WebSocketNotificationService) SendNotification(userID uint64, payload interface{}, messageType string) error {
	s.logger.Info("enviando notificacion por WebSocket",
		zap.Uint64("userID", userID),
		zap.String("type", messageType),
	)
	return s.hub.SendMessageToUser(userID, payload, messageType)
}

func (s *WebSocketNotificationService) SendNotificationToRoles(roles []constants.Role, payload interface{}, messageType string) error {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	s.logger.Info("enviando notificacion por WebSocket a roles",
		zap.Strings("roles", names),
		zap.String("type", messageType),
	)
	return s.hub.SendMessageToRoles(roles, payload, messageType)
}
