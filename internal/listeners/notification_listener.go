package listeners

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-system/internal/events"
	"asset-system/internal/repositories"
	"asset-system/internal/services"
	"asset-system/pkg/constants"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/websocket"
)

// NotificationListener traduce los eventos del ciclo de vida en
// notificaciones: WebSocket para la campanita del frontend y correo (simulado)
// para el personal involucrado y las bajas.
type NotificationListener struct {
	notificationService   services.NotificationServiceInterface
	wsNotificationService services.WebSocketNotificationServiceInterface
	userRepo              repositories.UserRepositoryInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	notificationService services.NotificationServiceInterface,
	wsNotificationService services.WebSocketNotificationServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationService:   notificationService,
		wsNotificationService: wsNotificationService,
		userRepo:              userRepo,
		logger:                logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("asset.ledger.entry.created", l.handleLedgerEntryCreated)
	bus.Subscribe("asset.assignment.created", l.handleAssignmentCreated)
	bus.Subscribe("asset.reassignment.created", l.handleReassignmentCreated)
	bus.Subscribe("asset.devolution.completed", l.handleDevolutionCompleted)
	bus.Subscribe("asset.disposal.requested", l.handleDisposalRequested)
	bus.Subscribe("asset.disposal.resolved", l.handleDisposalResolved)
	l.logger.Info("NotificationListener suscrito a los eventos del ciclo de vida")
}

func (l *NotificationListener) handleLedgerEntryCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.LedgerEntryCreatedEvent)
	if !ok || e.Unit == nil {
		return nil
	}

	payload := &websocket.NotificationPayload{
		EventID:   uuid.New().String(),
		Type:      string(e.Entry.ChangeType),
		Message:   e.Entry.Detail,
		UnitCode:  e.Unit.Code,
		Link:      fmt.Sprintf("/asset-units/%d/trail", e.Unit.ID),
		CreatedAt: e.Entry.Timestamp,
	}

	roles := []constants.Role{constants.RoleAdministrator, constants.RoleManager}
	return l.wsNotificationService.SendNotificationToRoles(roles, payload, "notification")
}

func (l *NotificationListener) handleAssignmentCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssignmentCreatedEvent)
	if !ok || e.Personnel == nil || !e.Personnel.Email.Valid {
		return nil
	}

	codes := make([]string, 0, len(e.Units))
	for _, u := range e.Units {
		codes = append(codes, u.Code)
	}
	detail := ""
	if e.Assignment != nil {
		detail = e.Assignment.Detail
	}
	if err := l.notificationService.SendAssignmentEmail(e.Personnel.Email.String, e.Personnel.Name, codes, detail); err != nil {
		l.logger.Error("no se pudo enviar el correo de asignación",
			zap.Uint64("personnelID", e.Personnel.ID), zap.Error(err))
		return err
	}
	return nil
}

func (l *NotificationListener) handleReassignmentCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ReassignmentCreatedEvent)
	if !ok || e.NewPersonnel == nil || e.Unit == nil || !e.NewPersonnel.Email.Valid {
		return nil
	}

	detail := ""
	if e.Reassignment != nil {
		detail = e.Reassignment.Detail
	}
	if err := l.notificationService.SendReassignmentEmail(e.NewPersonnel.Email.String, e.NewPersonnel.Name, e.Unit.Code, detail); err != nil {
		l.logger.Error("no se pudo enviar el correo de reasignación",
			zap.Uint64("personnelID", e.NewPersonnel.ID), zap.Error(err))
		return err
	}
	return nil
}

func (l *NotificationListener) handleDevolutionCompleted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.DevolutionCompletedEvent)
	if !ok || e.Personnel == nil || !e.Personnel.Email.Valid {
		return nil
	}

	codes := make([]string, 0, len(e.Units))
	for _, u := range e.Units {
		codes = append(codes, u.Code)
	}
	if err := l.notificationService.SendReturnEmail(e.Personnel.Email.String, e.Personnel.Name, codes, e.Detail); err != nil {
		l.logger.Error("no se pudo enviar el correo de devolución",
			zap.Uint64("personnelID", e.Personnel.ID), zap.Error(err))
		return err
	}
	return nil
}

func (l *NotificationListener) handleDisposalRequested(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.DisposalRequestedEvent)
	if !ok || e.Disposal == nil || e.Unit == nil {
		return nil
	}

	admins, err := l.userRepo.ListByRoles(ctx, []constants.Role{constants.RoleAdministrator})
	if err != nil {
		l.logger.Error("no se pudieron listar los administradores", zap.Error(err))
		return err
	}

	for _, admin := range admins {
		if err := l.notificationService.SendDisposalRequestEmail(admin.Email, e.Unit.Code, e.Disposal.Reason); err != nil {
			l.logger.Error("no se pudo enviar el correo de solicitud de baja",
				zap.Uint64("userID", admin.ID), zap.Error(err))
		}
	}

	payload := &websocket.NotificationPayload{
		EventID:   uuid.New().String(),
		Type:      "SOLICITUD_BAJA",
		Message:   fmt.Sprintf("Baja pendiente de la unidad %s: %s", e.Unit.Code, e.Disposal.Reason),
		UnitCode:  e.Unit.Code,
		Link:      fmt.Sprintf("/disposals/%d", e.Disposal.ID),
		CreatedAt: e.Disposal.Date,
	}
	return l.wsNotificationService.SendNotificationToRoles(
		[]constants.Role{constants.RoleAdministrator}, payload, "notification")
}

func (l *NotificationListener) handleDisposalResolved(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.DisposalResolvedEvent)
	if !ok || e.Disposal == nil || e.Unit == nil {
		return nil
	}

	if requester, err := l.userRepo.FindByID(ctx, e.Disposal.RequestedBy); err == nil {
		if err := l.notificationService.SendDisposalResolvedEmail(requester.Email, e.Unit.Code, string(e.Disposal.Status)); err != nil {
			l.logger.Error("no se pudo enviar el correo de resolución de baja",
				zap.Uint64("userID", requester.ID), zap.Error(err))
		}
	}

	payload := &websocket.NotificationPayload{
		EventID:   uuid.New().String(),
		Type:      "BAJA_RESUELTA",
		Message:   fmt.Sprintf("La baja de la unidad %s fue %s", e.Unit.Code, e.Disposal.Status),
		UnitCode:  e.Unit.Code,
		Link:      fmt.Sprintf("/disposals/%d", e.Disposal.ID),
		CreatedAt: e.Disposal.Date,
	}
	return l.wsNotificationService.SendNotification(e.Disposal.RequestedBy, payload, "notification")
}
