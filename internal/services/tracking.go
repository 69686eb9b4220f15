package services

import (
	"context"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"

	"go.uber.org/zap"
)

type TrackingServiceInterface interface {
	GetAssetTrail(ctx context.Context, assetUnitID uint64) (*dto.AssetTrailDTO, error)
	GetAssetUnits(ctx context.Context, filter dto.AssetUnitFilterDTO) ([]dto.AssetUnitDTO, uint64, error)
	FindAssetUnit(ctx context.Context, id uint64) (*dto.AssetUnitDTO, error)
}

// TrackingService arma el seguimiento de una unidad: su snapshot actual más
// el historial completo del ledger en orden cronológico.
type TrackingService struct {
	unitRepo   repositories.AssetUnitRepositoryInterface
	ledgerRepo repositories.LedgerRepositoryInterface
	logger     *zap.Logger
}

func NewTrackingService(
	unitRepo repositories.AssetUnitRepositoryInterface,
	ledgerRepo repositories.LedgerRepositoryInterface,
	logger *zap.Logger,
) TrackingServiceInterface {
	return &TrackingService{
		unitRepo:   unitRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

func (s *TrackingService) GetAssetTrail(ctx context.Context, assetUnitID uint64) (*dto.AssetTrailDTO, error) {
	unit, err := s.unitRepo.FindWithModel(ctx, assetUnitID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListByUnit(ctx, assetUnitID)
	if err != nil {
		return nil, err
	}
	total, err := s.ledgerRepo.CountByUnit(ctx, assetUnitID)
	if err != nil {
		return nil, err
	}

	trail := &dto.AssetTrailDTO{
		Unit:    *assetUnitToDTO(unit),
		Entries: make([]dto.LedgerEntryDTO, 0, len(entries)),
		Total:   total,
	}
	for _, e := range entries {
		trail.Entries = append(trail.Entries, *ledgerEntryToDTO(e))
	}
	return trail, nil
}

func (s *TrackingService) GetAssetUnits(ctx context.Context, filterDTO dto.AssetUnitFilterDTO) ([]dto.AssetUnitDTO, uint64, error) {
	filter := repositories.AssetUnitFilter{
		Assigned: filterDTO.Assigned,
		Limit:    filterDTO.Limit,
		Offset:   filterDTO.Offset,
	}
	if filterDTO.ModelID != nil {
		filter.ModelID = *filterDTO.ModelID
	}
	if filterDTO.HolderID != nil {
		filter.HolderID = *filterDTO.HolderID
	}
	if filterDTO.StockCondition != nil {
		filter.StockCondition = entities.StockCondition(*filterDTO.StockCondition)
	}

	units, total, err := s.unitRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.AssetUnitDTO, 0, len(units))
	for _, u := range units {
		result = append(result, *assetUnitToDTO(u))
	}
	return result, total, nil
}

func (s *TrackingService) FindAssetUnit(ctx context.Context, id uint64) (*dto.AssetUnitDTO, error) {
	unit, err := s.unitRepo.FindWithModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return assetUnitToDTO(unit), nil
}

func assetUnitToDTO(u *entities.AssetUnit) *dto.AssetUnitDTO {
	out := &dto.AssetUnitDTO{
		ID:             u.ID,
		Code:           u.Code,
		Assigned:       u.Assigned,
		StockCondition: string(u.StockCondition),
		PhysicalState:  string(u.PhysicalState),
		CurrentCost:    u.CurrentCost,
		HolderID:       u.CurrentHolderID.Ptr(),
	}
	if u.AssetModel != nil {
		out.Model = dto.ShortAssetModelDTO{
			ID:   u.AssetModel.ID,
			Name: u.AssetModel.Name,
			Code: u.AssetModel.Code,
		}
	}
	if u.CreatedAt != nil {
		out.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	if u.UpdatedAt != nil {
		out.UpdatedAt = u.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

func ledgerEntryToDTO(e *entities.LifecycleLedgerEntry) *dto.LedgerEntryDTO {
	out := &dto.LedgerEntryDTO{
		ID:          e.ID,
		AssetUnitID: e.AssetUnitID,
		ChangeType:  string(e.ChangeType),
		Detail:      e.Detail,
		Timestamp:   e.Timestamp.Format(time.RFC3339),
	}
	for _, ref := range []interface{ Ptr() *uint64 }{
		e.AssignmentID, e.ReassignmentID, e.ReturnID, e.DisposalID, e.ConditionChangeID, e.DepreciationID,
	} {
		if p := ref.Ptr(); p != nil {
			out.ReferenceID = p
			break
		}
	}
	return out
}
