package services

import (
	"context"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/utils"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetInventoryReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error)
	GetDepreciationReport(ctx context.Context, year string) ([]entities.DepreciationReportItem, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

func (s *reportService) GetInventoryReport(ctx context.Context, filter entities.ReportFilter) ([]entities.ReportItem, error) {
	if _, err := utils.GetUserIDFromCtx(ctx); err != nil {
		return nil, err
	}
	items, err := s.reportRepo.GetInventoryReport(ctx, filter)
	if err != nil {
		s.logger.Error("no se pudo armar el reporte de inventario", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *reportService) GetDepreciationReport(ctx context.Context, year string) ([]entities.DepreciationReportItem, error) {
	if _, err := utils.GetUserIDFromCtx(ctx); err != nil {
		return nil, err
	}
	items, err := s.reportRepo.GetDepreciationReport(ctx, year)
	if err != nil {
		s.logger.Error("no se pudo armar el reporte de depreciaciones", zap.Error(err), zap.String("year", year))
		return nil, err
	}
	return items, nil
}
