package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sebschult/FeWo-BookingService/internal/pricing"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Service отвечает на вопрос "свободен ли диапазон": ночь недоступна,
// если она занята в инвентаре ИЛИ на ней висит живой публичный холд.
// Просроченные холды отфильтровываются на чтении, чистильщик не нужен.
type Service struct {
	inventoryRepo InventoryRepository
	holdRepo      HoldRepository
	logger        Logger
	now           nowFunc
}

// NewService создает новый экземпляр сервиса доступности
func NewService(inventoryRepo InventoryRepository, holdRepo HoldRepository, logger Logger) *Service {
	return &Service{
		inventoryRepo: inventoryRepo,
		holdRepo:      holdRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// IsRangeAvailable проверяет, что все ночи [start, end) свободны
// и от инвентаря, и от живых холдов
func (s *Service) IsRangeAvailable(ctx context.Context, propertyID int64, start, end types.DateString) (bool, error) {
	nights, err := pricing.EachNight(start, end)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if len(nights) == 0 {
		return false, ErrInvalidRange
	}

	free, err := s.inventoryRepo.IsFreeRange(ctx, propertyID, nights)
	if err != nil {
		s.logger.Error("IsRangeAvailable: inventory check failed for property=%d: %v", propertyID, err)
		return false, fmt.Errorf("%w: IsRangeAvailable - inventory check: %v", ErrInternal, err)
	}
	if !free {
		return false, nil
	}

	held, err := s.holdRepo.ListLiveNights(ctx, propertyID, nights, s.now())
	if err != nil {
		s.logger.Error("IsRangeAvailable: hold check failed for property=%d: %v", propertyID, err)
		return false, fmt.Errorf("%w: IsRangeAvailable - hold check: %v", ErrInternal, err)
	}
	return len(held) == 0, nil
}

// ListUnavailableNights возвращает объединение занятых и захолженных
// ночей в окне [from, to), отсортированное и без дубликатов.
// Формат ответа подходит для календаря на витрине.
func (s *Service) ListUnavailableNights(ctx context.Context, propertyID int64, from, to types.DateString) ([]types.DateString, error) {
	if err := from.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if err := to.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if !from.Before(to) {
		return nil, ErrInvalidRange
	}

	blocked, err := s.inventoryRepo.ListBlockedDates(ctx, propertyID, from, to)
	if err != nil {
		s.logger.Error("ListUnavailableNights: inventory query failed for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: ListUnavailableNights - inventory query: %v", ErrInternal, err)
	}

	held, err := s.holdRepo.ListLiveDates(ctx, propertyID, from, to, s.now())
	if err != nil {
		s.logger.Error("ListUnavailableNights: hold query failed for property=%d: %v", propertyID, err)
		return nil, fmt.Errorf("%w: ListUnavailableNights - hold query: %v", ErrInternal, err)
	}

	seen := make(map[types.DateString]struct{}, len(blocked)+len(held))
	merged := make([]types.DateString, 0, len(blocked)+len(held))
	for _, d := range blocked {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			merged = append(merged, d)
		}
	}
	for _, d := range held {
		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			merged = append(merged, d)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })

	return merged, nil
}
