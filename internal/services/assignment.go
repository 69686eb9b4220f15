package services

import (
	"context"
	"fmt"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/internal/lifecycle"
	"asset-system/internal/repositories"
	"asset-system/pkg/clock"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AssignmentServiceInterface interface {
	CreateAssignment(ctx context.Context, payload dto.CreateAssignmentDTO) (*dto.AssignmentDTO, error)
	FindAssignment(ctx context.Context, id uint64) (*dto.AssignmentDTO, error)
	GetAssignments(ctx context.Context, limit, offset uint64) ([]dto.AssignmentDTO, uint64, error)
}

type AssignmentService struct {
	txManager      repositories.TxManagerInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	unitRepo       repositories.AssetUnitRepositoryInterface
	modelRepo      repositories.AssetModelRepositoryInterface
	ledgerRepo     repositories.LedgerRepositoryInterface
	personnelRepo  repositories.PersonnelRepositoryInterface
	bus            *eventbus.Bus
	clock          clock.Clock
	logger         *zap.Logger
}

func NewAssignmentService(
	txManager repositories.TxManagerInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	modelRepo repositories.AssetModelRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	personnelRepo repositories.PersonnelRepositoryInterface,
	bus *eventbus.Bus,
	clk clock.Clock,
	logger *zap.Logger,
) AssignmentServiceInterface {
	return &AssignmentService{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		unitRepo:       unitRepo,
		modelRepo:      modelRepo,
		ledgerRepo:     ledgerRepo,
		personnelRepo:  personnelRepo,
		bus:            bus,
		clock:          clk,
		logger:         logger,
	}
}

// CreateAssignment asigna una o varias unidades a un personal. Primero valida
// todas las unidades bajo bloqueo y recién después muta: si una sola falla,
// ninguna cambia.
func (s *AssignmentService) CreateAssignment(ctx context.Context, payload dto.CreateAssignmentDTO) (*dto.AssignmentDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	person, err := s.personnelRepo.FindByID(ctx, payload.PersonnelID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("el personal %d no existe", payload.PersonnelID)
	}
	if !person.Active {
		return nil, apperrors.NewInvalidInputError("el personal %d no está activo", payload.PersonnelID)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("fecha inválida: %s", payload.Date)
	}

	seen := make(map[uint64]struct{}, len(payload.AssetUnitIDs))
	for _, id := range payload.AssetUnitIDs {
		if _, dup := seen[id]; dup {
			return nil, apperrors.NewInvalidInputError("la unidad %d está repetida en la solicitud", id)
		}
		seen[id] = struct{}{}
	}

	assignment := &entities.Assignment{
		UserID:      userID,
		PersonnelID: payload.PersonnelID,
		Date:        date,
		Detail:      payload.Detail,
		ApprovalDoc: null.StringFromPtr(payload.ApprovalDoc),
	}

	now := s.clock.Now()
	var ledgerEntries []entities.LifecycleLedgerEntry
	var lockedUnits []*entities.AssetUnit

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		lockedUnits = lockedUnits[:0]
		for _, unitID := range payload.AssetUnitIDs {
			unit, err := s.unitRepo.FindForUpdateInTx(ctx, tx, unitID)
			if err != nil {
				return err
			}
			if err := lifecycle.CanAssign(unit); err != nil {
				return err
			}
			lockedUnits = append(lockedUnits, unit)
		}

		assignmentID, err := s.assignmentRepo.CreateInTx(ctx, tx, assignment)
		if err != nil {
			return err
		}
		assignment.ID = assignmentID

		for _, unit := range lockedUnits {
			if _, err := s.assignmentRepo.AddUnitInTx(ctx, tx, assignmentID, unit.ID); err != nil {
				return err
			}

			err = s.unitRepo.UpdateAssignmentStateInTx(ctx, tx, unit.ID,
				true, entities.StockAssigned, null.Uint64From(payload.PersonnelID))
			if err != nil {
				return err
			}

			entry := entities.LifecycleLedgerEntry{
				AssetUnitID:  unit.ID,
				ChangeType:   entities.ChangeAssignment,
				Detail:       fmt.Sprintf("Unidad %s asignada a %s", unit.Code, person.Name),
				Timestamp:    now,
				AssignmentID: null.Uint64From(assignmentID),
			}
			entryID, err := s.ledgerRepo.AppendInTx(ctx, tx, &entry)
			if err != nil {
				return err
			}
			entry.ID = entryID
			ledgerEntries = append(ledgerEntries, entry)

			if err := s.modelRepo.DecrementAvailableInTx(ctx, tx, unit.AssetModelID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("no se pudo crear la asignación", zap.Error(err))
		return nil, err
	}

	for i, entry := range ledgerEntries {
		publishLedgerEvent(ctx, s.bus, entry, lockedUnits[i], userID)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.AssignmentCreatedEvent{
			Assignment: assignment,
			Units:      lockedUnits,
			Personnel:  person,
			ActorID:    userID,
		})
	}

	s.logger.Info("asignación creada",
		zap.Uint64("assignmentID", assignment.ID),
		zap.Uint64("personnelID", payload.PersonnelID),
		zap.Int("unidades", len(payload.AssetUnitIDs)),
	)
	return assignmentToDTO(assignment, payload.AssetUnitIDs), nil
}

func (s *AssignmentService) FindAssignment(ctx context.Context, id uint64) (*dto.AssignmentDTO, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unitIDs := make([]uint64, 0, len(assignment.Units))
	for _, u := range assignment.Units {
		unitIDs = append(unitIDs, u.AssetUnitID)
	}
	return assignmentToDTO(assignment, unitIDs), nil
}

func (s *AssignmentService) GetAssignments(ctx context.Context, limit, offset uint64) ([]dto.AssignmentDTO, uint64, error) {
	assignments, total, err := s.assignmentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		unitIDs := make([]uint64, 0, len(a.Units))
		for _, u := range a.Units {
			unitIDs = append(unitIDs, u.AssetUnitID)
		}
		result = append(result, *assignmentToDTO(a, unitIDs))
	}
	return result, total, nil
}

func assignmentToDTO(a *entities.Assignment, unitIDs []uint64) *dto.AssignmentDTO {
	out := &dto.AssignmentDTO{
		ID:           a.ID,
		UserID:       a.UserID,
		PersonnelID:  a.PersonnelID,
		Date:         a.Date.Format("2006-01-02"),
		Detail:       a.Detail,
		ApprovalDoc:  a.ApprovalDoc.Ptr(),
		AssetUnitIDs: unitIDs,
	}
	if a.CreatedAt != nil {
		out.CreatedAt = a.CreatedAt.Format(time.RFC3339)
	}
	return out
}
