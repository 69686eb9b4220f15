package services

import (
	"context"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type PersonnelServiceInterface interface {
	CreatePersonnel(ctx context.Context, payload dto.CreatePersonnelDTO) (*dto.PersonnelDTO, error)
	FindPersonnel(ctx context.Context, id uint64) (*dto.PersonnelDTO, error)
	GetPersonnel(ctx context.Context, limit, offset uint64) ([]dto.PersonnelDTO, uint64, error)
	DeletePersonnel(ctx context.Context, id uint64) error
}

type PersonnelService struct {
	personnelRepo repositories.PersonnelRepositoryInterface
	unitRepo      repositories.AssetUnitRepositoryInterface
	logger        *zap.Logger
}

func NewPersonnelService(
	personnelRepo repositories.PersonnelRepositoryInterface,
	unitRepo repositories.AssetUnitRepositoryInterface,
	logger *zap.Logger,
) PersonnelServiceInterface {
	return &PersonnelService{
		personnelRepo: personnelRepo,
		unitRepo:      unitRepo,
		logger:        logger,
	}
}

func (s *PersonnelService) CreatePersonnel(ctx context.Context, payload dto.CreatePersonnelDTO) (*dto.PersonnelDTO, error) {
	person := &entities.Personnel{
		Name:     payload.Name,
		CI:       payload.CI,
		Position: payload.Position,
		Email:    null.StringFromPtr(payload.Email),
		Active:   true,
	}
	id, err := s.personnelRepo.Create(ctx, person)
	if err != nil {
		s.logger.Error("no se pudo crear el personal", zap.Error(err))
		return nil, err
	}
	person.ID = id
	return personnelToDTO(person), nil
}

func (s *PersonnelService) FindPersonnel(ctx context.Context, id uint64) (*dto.PersonnelDTO, error) {
	person, err := s.personnelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return personnelToDTO(person), nil
}

func (s *PersonnelService) GetPersonnel(ctx context.Context, limit, offset uint64) ([]dto.PersonnelDTO, uint64, error) {
	people, total, err := s.personnelRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.PersonnelDTO, 0, len(people))
	for _, p := range people {
		result = append(result, *personnelToDTO(p))
	}
	return result, total, nil
}

// DeletePersonnel elimina al personal solo si no tiene unidades a su cargo.
func (s *PersonnelService) DeletePersonnel(ctx context.Context, id uint64) error {
	units, _, err := s.unitRepo.List(ctx, repositories.AssetUnitFilter{HolderID: id, Limit: 1})
	if err != nil {
		return err
	}
	if len(units) > 0 {
		return apperrors.NewInvalidInputError("el personal %d tiene unidades asignadas, debe devolverlas primero", id)
	}
	return s.personnelRepo.Delete(ctx, id)
}

func personnelToDTO(p *entities.Personnel) *dto.PersonnelDTO {
	return &dto.PersonnelDTO{
		ID:       p.ID,
		Name:     p.Name,
		CI:       p.CI,
		Position: p.Position,
		Email:    p.Email.Ptr(),
		Active:   p.Active,
	}
}
