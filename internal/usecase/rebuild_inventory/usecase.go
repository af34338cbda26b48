package rebuild_inventory

import (
	"context"
	"fmt"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/internal/pricing"
	"github.com/sebschult/FeWo-BookingService/pkg/ptr"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Request запрос пересборки инвентаря объекта в окне [FromDate, ToDate)
type Request struct {
	PropertyID int64
	FromDate   types.DateString
	ToDate     types.DateString
}

// Response итог пересборки
type Response struct {
	PropertyID    int64  `json:"propertyId"`
	FromDate      string `json:"fromDate"`
	ToDate        string `json:"toDate"`
	Bookings      int    `json:"bookings"`
	NightsBlocked int    `json:"nightsBlocked"`
}

// UseCase обслуживающая операция оператора: инвентарь окна очищается и
// строится заново из подтвержденных заявок. Чинит расхождения после
// ручных правок БД; при корректном состоянии ничего не меняет.
type UseCase struct {
	bookingRepo   BookingRepository
	inventoryRepo InventoryRepository
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	inventoryRepo InventoryRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute выполняет пересборку в одной сериализуемой транзакции:
// читатель никогда не видит наполовину очищенное окно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RebuildInventory: property=%d, window=%s..%s", req.PropertyID, req.FromDate, req.ToDate)

	if req.PropertyID <= 0 {
		return nil, fmt.Errorf("%w: propertyId must be positive", ErrInvalidInput)
	}
	if err := req.FromDate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if err := req.ToDate.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if !req.FromDate.Before(req.ToDate) {
		return nil, fmt.Errorf("%w: toDate must be after fromDate", ErrInvalidRange)
	}

	resp := &Response{
		PropertyID: req.PropertyID,
		FromDate:   req.FromDate.String(),
		ToDate:     req.ToDate.String(),
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Подтвержденные заявки, пересекающие окно
		bookings, err := uc.bookingRepo.ListByProperty(txCtx, domain.BookingsFilter{
			PropertyID: req.PropertyID,
			FromDate:   ptr.Ptr(req.FromDate),
			ToDate:     ptr.Ptr(req.ToDate),
			Status:     ptr.Ptr(domain.StatusApproved),
		})
		if err != nil {
			uc.logger.Error("RebuildInventory: failed to list approved bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}

		// 2. Окно очищается целиком
		if err := uc.inventoryRepo.ClearRange(txCtx, req.PropertyID, req.FromDate, req.ToDate); err != nil {
			uc.logger.Error("RebuildInventory: failed to clear range: %v", err)
			return fmt.Errorf("%w: failed to clear range: %v", ErrInternal, err)
		}

		// 3. Ночи каждой подтвержденной заявки блокируются заново,
		// но только в пределах окна
		for _, booking := range bookings {
			nights, err := pricing.EachNight(booking.StartDate, booking.EndDate)
			if err != nil {
				uc.logger.Error("RebuildInventory: invalid stored range for booking id=%s: %v", booking.ID, err)
				return fmt.Errorf("%w: invalid stored range for booking %s: %v", ErrInternal, booking.ID, err)
			}

			inWindow := make([]types.DateString, 0, len(nights))
			for _, night := range nights {
				if !night.Before(req.FromDate) && night.Before(req.ToDate) {
					inWindow = append(inWindow, night)
				}
			}
			if len(inWindow) == 0 {
				continue
			}

			if err := uc.inventoryRepo.BlockNights(txCtx, req.PropertyID, inWindow, booking.ID); err != nil {
				uc.logger.Error("RebuildInventory: failed to block nights for booking id=%s: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to block nights: %v", ErrInternal, err)
			}
			resp.Bookings++
			resp.NightsBlocked += len(inWindow)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RebuildInventory: property=%d, rebuilt %d nights from %d bookings",
		req.PropertyID, resp.NightsBlocked, resp.Bookings)
	return resp, nil
}
