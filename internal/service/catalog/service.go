package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/service/catalog/models"
)

// Service работа со справочником объектов: чтение и полная замена
// конфигурации (поля объекта, сезоны, бэнды курортного сбора)
type Service struct {
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочника
func NewService(catalogRepo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetPropertyConfig получает объект вместе с сезонами и бэндами сбора
func (s *Service) GetPropertyConfig(ctx context.Context, propertyID int64) (*models.PropertyConfigResponse, error) {
	s.logger.Info("GetPropertyConfig: fetching config for property=%d", propertyID)

	property, err := s.catalogRepo.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPropertyNotFound) {
			s.logger.Warn("GetPropertyConfig: property=%d not found", propertyID)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("GetPropertyConfig: repository error for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyConfig - repository error: %v", ErrInternal, err)
	}

	seasons, err := s.catalogRepo.ListSeasons(ctx, propertyID)
	if err != nil {
		s.logger.Error("GetPropertyConfig: failed to list seasons for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyConfig - list seasons: %v", ErrInternal, err)
	}

	bands, err := s.catalogRepo.ListTaxBands(ctx, propertyID)
	if err != nil {
		s.logger.Error("GetPropertyConfig: failed to list tax bands for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyConfig - list tax bands: %v", ErrInternal, err)
	}

	return models.FromDomainPropertyConfig(property, seasons, bands), nil
}

// UpdatePropertyConfig атомарно заменяет конфигурацию объекта.
// Поля объекта, сезоны и бэнды пишутся в одной транзакции: читатель
// никогда не видит объект с полуобновленным прайсом.
func (s *Service) UpdatePropertyConfig(ctx context.Context, propertyID int64, req *models.UpdatePropertyConfigRequest) (*models.PropertyConfigResponse, error) {
	s.logger.Info("UpdatePropertyConfig: updating config for property=%d", propertyID)

	if err := validateConfigRequest(req); err != nil {
		s.logger.Warn("UpdatePropertyConfig: invalid request for property=%d: %v", propertyID, err)
		return nil, err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.catalogRepo.UpdateProperty(ctx, propertyID, req.ToDomainProperty()); err != nil {
			if errors.Is(err, catalogRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("%w: UpdatePropertyConfig - update property: %v", ErrInternal, err)
		}
		if err := s.catalogRepo.ReplaceSeasons(ctx, propertyID, req.ToDomainSeasons()); err != nil {
			return fmt.Errorf("%w: UpdatePropertyConfig - replace seasons: %v", ErrInternal, err)
		}
		if err := s.catalogRepo.ReplaceTaxBands(ctx, propertyID, req.ToDomainTaxBands()); err != nil {
			return fmt.Errorf("%w: UpdatePropertyConfig - replace tax bands: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			s.logger.Warn("UpdatePropertyConfig: property=%d not found", propertyID)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("UpdatePropertyConfig: transaction failed for property=%d: %v", propertyID, err)
		return nil, err
	}

	s.logger.Info("UpdatePropertyConfig: successfully updated config for property=%d", propertyID)
	return s.GetPropertyConfig(ctx, propertyID)
}

// validateConfigRequest проверяет даты сезонов, диапазоны MM-DD и ставки
func validateConfigRequest(req *models.UpdatePropertyConfigRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.DefaultNightlyRate < 0 || req.CleaningFee < 0 {
		return fmt.Errorf("%w: rates must not be negative", ErrInvalidInput)
	}
	if req.MaxGuests <= 0 {
		return fmt.Errorf("%w: maxGuests must be positive", ErrInvalidInput)
	}
	if req.CheckInHour < 0 || req.CheckInHour > 23 || req.CheckOutHour < 0 || req.CheckOutHour > 23 {
		return fmt.Errorf("%w: check-in/check-out hour must be within 0..23", ErrInvalidInput)
	}

	for i, season := range req.ToDomainSeasons() {
		if err := season.StartDate.Validate(); err != nil {
			return fmt.Errorf("%w: season %d: %v", ErrInvalidInput, i, err)
		}
		if err := season.EndDate.Validate(); err != nil {
			return fmt.Errorf("%w: season %d: %v", ErrInvalidInput, i, err)
		}
		if !season.StartDate.Before(season.EndDate) {
			return fmt.Errorf("%w: season %d: endDate must be after startDate", ErrInvalidInput, i)
		}
		if season.NightlyRate < 0 {
			return fmt.Errorf("%w: season %d: nightlyRate must not be negative", ErrInvalidInput, i)
		}
		if season.MinNights != nil && *season.MinNights < 1 {
			return fmt.Errorf("%w: season %d: minNights must be at least 1", ErrInvalidInput, i)
		}
	}

	for i, band := range req.ToDomainTaxBands() {
		if band.Rate < 0 {
			return fmt.Errorf("%w: tax band %d: rate must not be negative", ErrInvalidInput, i)
		}
		for j, rng := range band.Ranges {
			if err := rng.StartMD.Validate(); err != nil {
				return fmt.Errorf("%w: tax band %d range %d: %v", ErrInvalidInput, i, j, err)
			}
			if err := rng.EndMD.Validate(); err != nil {
				return fmt.Errorf("%w: tax band %d range %d: %v", ErrInvalidInput, i, j, err)
			}
		}
	}

	return nil
}
