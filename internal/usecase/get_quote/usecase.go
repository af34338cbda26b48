package get_quote

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/pricing"
)

// UseCase публичный расчет стоимости: цена проживания, курортный сбор
// и доступность диапазона одним ответом. Ничего не пишет и не холдит.
type UseCase struct {
	catalogRepo  CatalogRepository
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case расчета стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: property=%d, range=%s..%s, adults=%d",
		req.PropertyID, req.StartDate, req.EndDate, req.Adults)

	// 1. Валидация входных данных
	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: propertyId must be positive", ErrInvalidInput)
	}
	if req.Adults < 0 {
		return nil, fmt.Errorf("%w: adults must not be negative", ErrInvalidInput)
	}
	if _, err := pricing.NightsBetween(req.StartDate, req.EndDate); err != nil {
		uc.logger.Warn("GetQuote: invalid range %s..%s: %v", req.StartDate, req.EndDate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	// 2. Получаем объект и прайс
	property, err := uc.catalogRepo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPropertyNotFound) {
			uc.logger.Warn("GetQuote: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetQuote: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	seasons, err := uc.catalogRepo.ListSeasons(ctx, req.PropertyID)
	if err != nil {
		uc.logger.Error("GetQuote: failed to list seasons for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to list seasons: %v", ErrInternal, err)
	}
	bands, err := uc.catalogRepo.ListTaxBands(ctx, req.PropertyID)
	if err != nil {
		uc.logger.Error("GetQuote: failed to list tax bands for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to list tax bands: %v", ErrInternal, err)
	}

	// 3. Расчет цены и сбора
	price, err := pricing.PriceForStay(property, seasons, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	tax, err := pricing.TouristTaxForStay(bands, req.StartDate, req.EndDate, req.Adults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	minNights, err := pricing.MinNightsRequired(seasons, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	// 4. Доступность диапазона
	available, err := uc.availability.IsRangeAvailable(ctx, req.PropertyID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetQuote: availability check failed for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
	}

	// 5. Собираем ответ с поночной разбивкой
	resp := &Response{
		PropertyID:   req.PropertyID,
		StartDate:    req.StartDate.String(),
		EndDate:      req.EndDate.String(),
		Nights:       price.Nights,
		MinNights:    minNights,
		NightlyTotal: price.NightsTotal,
		CleaningFee:  price.CleaningFee,
		TouristTax:   tax.Total,
		GrandTotal:   price.Total + tax.Total,
		Currency:     price.Currency,
		Available:    available,
		PriceDetail:  make([]NightPrice, 0, len(price.Breakdown)),
		TaxDetail:    make([]NightTax, 0, len(tax.Breakdown)),
	}
	for _, night := range price.Breakdown {
		resp.PriceDetail = append(resp.PriceDetail, NightPrice{
			Date:        night.Date.String(),
			NightlyRate: night.NightlyRate,
			SeasonName:  night.SeasonName,
		})
	}
	for _, night := range tax.Breakdown {
		resp.TaxDetail = append(resp.TaxDetail, NightTax{
			Date:      night.Date.String(),
			PerPerson: night.PerPerson,
			Persons:   night.Persons,
			Total:     night.Total,
			BandLabel: night.BandLabel,
		})
	}

	uc.logger.Info("GetQuote: property=%d, %d nights, total=%.2f %s, available=%t",
		req.PropertyID, resp.Nights, resp.GrandTotal, resp.Currency, resp.Available)
	return resp, nil
}
