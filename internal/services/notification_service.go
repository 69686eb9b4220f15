package services

import "go.uber.org/zap"

// NotificationServiceInterface abstrae el canal de correo para los listeners.
type NotificationServiceInterface interface {
	SendAssignmentEmail(to, personnelName string, unitCodes []string, detail string) error
	SendReassignmentEmail(to, personnelName, unitCode, detail string) error
	SendReturnEmail(to, personnelName string, unitCodes []string, detail string) error
	SendDisposalRequestEmail(to, unitCode, reason string) error
	SendDisposalResolvedEmail(to, unitCode, status string) error
}

// mockNotificationService escribe en el log en lugar de enviar correos reales.
type mockNotificationService struct {
	logger *zap.Logger
}

func NewMockNotificationService(logger *zap.Logger) NotificationServiceInterface {
	return &mockNotificationService{logger: logger}
}

func (s *mockNotificationService) SendAssignmentEmail(to, personnelName string, unitCodes []string, detail string) error {
	s.logger.Info("simulando envio de correo de asignacion",
		zap.String("para", to),
		zap.String("personal", personnelName),
		zap.Strings("unidades", unitCodes),
		zap.String("detalle", detail),
	)
	return nil
}

func (s *mockNotificationService) SendReassignmentEmail(to, personnelName, unitCode, detail string) error {
	s.logger.Info("simulando envio de correo de reasignacion",
		zap.String("para", to),
		zap.String("personal", personnelName),
		zap.String("unidad", unitCode),
		zap.String("detalle", detail),
	)
	return nil
}

func (s *mockNotificationService) SendReturnEmail(to, personnelName string, unitCodes []string, detail string) error {
	s.logger.Info("simulando envio de correo de devolucion",
		zap.String("para", to),
		zap.String("personal", personnelName),
		zap.Strings("unidades", unitCodes),
		zap.String("detalle", detail),
	)
	return nil
}

func (s *mockNotificationService) SendDisposalRequestEmail(to, unitCode, reason string) error {
	s.logger.Info("simulando envio de correo de solicitud de baja",
		zap.String("para", to),
		zap.String("unidad", unitCode),
		zap.String("motivo", reason),
	)
	return nil
}

func (s *mockNotificationService) SendDisposalResolvedEmail(to, unitCode, status string) error {
	s.logger.Info("simulando envio de correo de resolucion de baja",
		zap.String("para", to),
		zap.String("unidad", unitCode),
		zap.String("estado", status),
	)
	return nil
}
