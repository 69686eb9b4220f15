package services

import (
	"context"
	"fmt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var oneHundredPercent = decimal.NewFromInt(100)

type PartidaServiceInterface interface {
	CreatePartida(ctx context.Context, payload dto.CreatePartidaDTO) (*dto.PartidaDTO, error)
	FindPartida(ctx context.Context, id uint64) (*dto.PartidaDTO, error)
	GetPartidas(ctx context.Context) ([]dto.PartidaDTO, error)
	DeletePartida(ctx context.Context, id uint64) error
}

type PartidaService struct {
	partidaRepo repositories.PartidaRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	logger      *zap.Logger
}

func NewPartidaService(
	partidaRepo repositories.PartidaRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) PartidaServiceInterface {
	return &PartidaService{
		partidaRepo: partidaRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
	}
}

func (s *PartidaService) CreatePartida(ctx context.Context, payload dto.CreatePartidaDTO) (*dto.PartidaDTO, error) {
	if payload.RatePercentage.IsNegative() || payload.RatePercentage.GreaterThan(oneHundredPercent) {
		return nil, apperrors.NewInvalidInputError("la tasa de depreciación debe estar entre 0 y 100")
	}

	partida := &entities.Partida{
		Name:           payload.Name,
		UsefulLife:     payload.UsefulLife,
		RatePercentage: payload.RatePercentage,
	}
	id, err := s.partidaRepo.Create(ctx, partida)
	if err != nil {
		s.logger.Error("no se pudo crear la partida", zap.Error(err))
		return nil, err
	}
	partida.ID = id

	s.logger.Info("partida creada", zap.Uint64("partidaID", id), zap.String("name", payload.Name))
	return partidaToDTO(partida), nil
}

func (s *PartidaService) FindPartida(ctx context.Context, id uint64) (*dto.PartidaDTO, error) {
	partida, err := s.partidaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return partidaToDTO(partida), nil
}

func (s *PartidaService) GetPartidas(ctx context.Context) ([]dto.PartidaDTO, error) {
	partidas, err := s.partidaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PartidaDTO, 0, len(partidas))
	for _, p := range partidas {
		result = append(result, *partidaToDTO(p))
	}
	return result, nil
}

// DeletePartida borra la partida e invalida su tasa cacheada para que la
// próxima corrida de depreciación no use un valor viejo.
func (s *PartidaService) DeletePartida(ctx context.Context, id uint64) error {
	if err := s.partidaRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Del(ctx, fmt.Sprintf("partida:rate:%d", id)); err != nil {
			s.logger.Warn("no se pudo invalidar la tasa cacheada", zap.Error(err), zap.Uint64("partidaID", id))
		}
	}
	return nil
}

func partidaToDTO(p *entities.Partida) *dto.PartidaDTO {
	return &dto.PartidaDTO{
		ID:             p.ID,
		Name:           p.Name,
		UsefulLife:     p.UsefulLife,
		RatePercentage: p.RatePercentage,
	}
}
