package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	catalogRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/pricing"
)

// UseCase прием гостевой заявки: валидация, серверный расчет цены,
// постановка холдов на все ночи и запись заявки — атомарно.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogRepo   CatalogRepository
	inventoryRepo InventoryRepository
	holdRepo      HoldRepository
	mailClient    MailClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	holdTTL       time.Duration
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	inventoryRepo InventoryRepository,
	holdRepo HoldRepository,
	mailClient MailClient,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		holdRepo:      holdRepo,
		mailClient:    mailClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		holdTTL:       holdTTL,
		logger:        logger,
	}
}

// Execute выполняет use case приема заявки.
// Сериализуемая транзакция гарантирует "все ночи или ни одной": две
// параллельные заявки на пересекающиеся диапазоны не пройдут обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: property=%d, range=%s..%s, adults=%d, children=%d",
		req.PropertyID, req.StartDate, req.EndDate, req.Adults, req.Children)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация диапазона
	if _, err := validateRange(req.StartDate, req.EndDate, now); err != nil {
		uc.logger.Warn("CreateBooking: range validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем объект размещения
	property, err := uc.catalogRepo.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPropertyNotFound) {
			uc.logger.Warn("CreateBooking: property id=%d not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get property id=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	// 5. Проверяем вместимость объекта
	if req.Adults+req.Children > property.MaxGuests {
		uc.logger.Warn("CreateBooking: %d guests exceed capacity %d of property=%d",
			req.Adults+req.Children, property.MaxGuests, req.PropertyID)
		return nil, ErrTooManyGuests
	}

	// 6. Получаем прайс объекта
	seasons, err := uc.catalogRepo.ListSeasons(ctx, req.PropertyID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list seasons for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to list seasons: %v", ErrInternal, err)
	}
	bands, err := uc.catalogRepo.ListTaxBands(ctx, req.PropertyID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list tax bands for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to list tax bands: %v", ErrInternal, err)
	}

	// 7. Проверяем сезонный минимум ночей
	required, err := pricing.MinNightsRequired(seasons, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	nights, err := pricing.EachNight(req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if len(nights) < required {
		uc.logger.Warn("CreateBooking: stay of %d nights below seasonal minimum %d", len(nights), required)
		return nil, fmt.Errorf("%w: at least %d nights required", ErrStayTooShort, required)
	}

	// 8. Серверный расчет цены: клиентские суммы игнорируются
	price, err := pricing.PriceForStay(property, seasons, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	tax, err := pricing.TouristTaxForStay(bands, req.StartDate, req.EndDate, req.Adults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	summary := &domain.PriceSummary{
		Nights:       price.Nights,
		NightlyTotal: price.NightsTotal,
		CleaningFee:  price.CleaningFee,
		TouristTax:   tax.Total,
		GrandTotal:   price.Total + tax.Total,
		Currency:     price.Currency,
	}

	holdUntil := now.Add(uc.holdTTL)
	booking := &domain.Booking{
		ID:         uuid.New(),
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Adults:     req.Adults,
		Children:   req.Children,
		Status:     domain.StatusRequested,
		Contact: domain.Contact{
			Name:  req.Contact.Name,
			Email: req.Contact.Email,
			Phone: req.Contact.Phone,
			Address: domain.Address{
				Street:  req.Contact.Address.Street,
				Zip:     req.Contact.Address.Zip,
				City:    req.Contact.Address.City,
				Country: req.Contact.Address.Country,
			},
		},
		Message: req.Message,
		Summary: summary,
	}

	// 9. Холды и заявка пишутся в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Ночи не должны быть заняты подтвержденной бронью
		free, err := uc.inventoryRepo.IsFreeRange(txCtx, req.PropertyID, nights)
		if err != nil {
			uc.logger.Error("CreateBooking: inventory check failed: %v", err)
			return fmt.Errorf("%w: inventory check failed: %v", ErrInternal, err)
		}
		if !free {
			return ErrRangeAlreadyConfirmed
		}

		// 9.2. Ночи не должны быть захолжены другой живой заявкой.
		// Просроченные холды невидимы и будут перезаписаны upsert-ом.
		held, err := uc.holdRepo.ListLiveNights(txCtx, req.PropertyID, nights, now)
		if err != nil {
			uc.logger.Error("CreateBooking: hold check failed: %v", err)
			return fmt.Errorf("%w: hold check failed: %v", ErrInternal, err)
		}
		if len(held) > 0 {
			return ErrRangeAlreadyRequested
		}

		// 9.3. Ставим холды на все ночи разом
		if err := uc.holdRepo.CreateHolds(txCtx, req.PropertyID, nights, domain.HoldStatusRequested, booking.ID, holdUntil); err != nil {
			uc.logger.Error("CreateBooking: failed to create holds: %v", err)
			return fmt.Errorf("%w: failed to create holds: %v", ErrInternal, err)
		}

		// 9.4. Сохраняем заявку
		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRangeAlreadyRequested) || errors.Is(err, ErrRangeAlreadyConfirmed) {
			uc.logger.Warn("CreateBooking: range conflict for property=%d, range=%s..%s: %v",
				req.PropertyID, req.StartDate, req.EndDate, err)
			return nil, err
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, hold until %s",
		booking.ID, holdUntil.Format(time.RFC3339))

	// 10. Уведомляем оператора о новой заявке; сбой почты не откатывает заявку
	notify := uc.mailClient.Notify(ctx, string(domain.NotifyRequested), booking, property.Name)

	return &Response{
		ID:         booking.ID.String(),
		PropertyID: booking.PropertyID,
		StartDate:  booking.StartDate.String(),
		EndDate:    booking.EndDate.String(),
		Adults:     booking.Adults,
		Children:   booking.Children,
		Status:     string(booking.Status),
		Summary: SummaryResponse{
			Nights:       summary.Nights,
			NightlyTotal: summary.NightlyTotal,
			CleaningFee:  summary.CleaningFee,
			TouristTax:   summary.TouristTax,
			GrandTotal:   summary.GrandTotal,
			Currency:     summary.Currency,
		},
		HoldUntil: holdUntil,
		Notify:    NotifyResponse{OK: notify.OK, Detail: notify.Detail},
		CreatedAt: booking.CreatedAt,
	}, nil
}
