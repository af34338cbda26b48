package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	bookingRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/booking"
	catalogRepo "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/pricing"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings/models"
)

// Service управляет жизненным циклом заявок: requested -> approved |
// declined, approved -> cancelled, терминальные удаляются. Все переходы,
// двигающие инвентарь, выполняются в сериализуемой транзакции.
type Service struct {
	bookingRepo   BookingRepository
	inventoryRepo InventoryRepository
	holdRepo      HoldRepository
	catalogRepo   CatalogRepository
	mailClient    MailClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса жизненного цикла заявок
func NewService(
	bookingRepo BookingRepository,
	inventoryRepo InventoryRepository,
	holdRepo HoldRepository,
	catalogRepo CatalogRepository,
	mailClient MailClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		inventoryRepo: inventoryRepo,
		holdRepo:      holdRepo,
		catalogRepo:   catalogRepo,
		mailClient:    mailClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает заявку по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// ListByProperty получает заявки объекта с фильтрацией по статусу и окну дат
func (s *Service) ListByProperty(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByProperty: fetching bookings for property=%d, status=%v", req.PropertyID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByProperty: invalid filter for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByProperty(ctx, filter)
	if err != nil {
		s.logger.Error("ListByProperty: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: ListByProperty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByProperty: successfully fetched %d bookings for property=%d", len(bookings), req.PropertyID)
	return models.FromDomainBookingList(bookings), nil
}

// Approve подтверждает заявку и переносит ее ночи в инвентарь.
// Вся проверка и запись идут в одной сериализуемой транзакции: два
// параллельных подтверждения пересекающихся диапазонов не могут пройти
// оба. Уведомление отправляется после коммита и не влияет на результат.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.BookingResponse, models.NotifyResultResponse, error) {
	s.logger.Info("Approve: approving booking id=%s", id)

	var notify models.NotifyResultResponse

	booking, err := s.getBooking(ctx, "Approve", id)
	if err != nil {
		return nil, notify, err
	}

	if !booking.CanBeApproved() {
		s.logger.Warn("Approve: booking id=%s already approved", id)
		return nil, notify, ErrCannotApprove
	}

	nights, err := pricing.EachNight(booking.StartDate, booking.EndDate)
	if err != nil {
		s.logger.Error("Approve: invalid stored range for booking id=%s: %v", id, err)
		return nil, notify, fmt.Errorf("%w: Approve - invalid range: %v", ErrInternal, err)
	}

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		free, err := s.inventoryRepo.IsFreeRange(ctx, booking.PropertyID, nights)
		if err != nil {
			return fmt.Errorf("%w: Approve - check inventory: %v", ErrInternal, err)
		}
		if !free {
			return ErrRangeAlreadyConfirmed
		}

		if err := s.inventoryRepo.BlockNights(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Approve - block nights: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusApproved); err != nil {
			return fmt.Errorf("%w: Approve - update status: %v", ErrInternal, err)
		}
		// Холд свое отработал: ночи держит инвентарь
		if err := s.holdRepo.ReleaseForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Approve - release holds: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRangeAlreadyConfirmed) {
			s.logger.Warn("Approve: range conflict for booking id=%s", id)
			return nil, notify, ErrRangeAlreadyConfirmed
		}
		s.logger.Error("Approve: transaction failed for booking id=%s: %v", id, err)
		return nil, notify, err
	}

	booking.Status = domain.StatusApproved
	notify = s.notify(ctx, domain.NotifyApproved, booking)

	s.logger.Info("Approve: successfully approved booking id=%s", id)
	return models.FromDomainBooking(booking), notify, nil
}

// Decline отклоняет ожидающую заявку и снимает ее холды
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*models.BookingResponse, models.NotifyResultResponse, error) {
	s.logger.Info("Decline: declining booking id=%s", id)

	var notify models.NotifyResultResponse

	booking, err := s.getBooking(ctx, "Decline", id)
	if err != nil {
		return nil, notify, err
	}

	if !booking.IsRequested() {
		s.logger.Warn("Decline: booking id=%s not in requested status, status=%s", id, booking.Status)
		return nil, notify, ErrCannotDecline
	}

	nights, err := pricing.EachNight(booking.StartDate, booking.EndDate)
	if err != nil {
		return nil, notify, fmt.Errorf("%w: Decline - invalid range: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusDeclined); err != nil {
			return fmt.Errorf("%w: Decline - update status: %v", ErrInternal, err)
		}
		if err := s.holdRepo.ReleaseForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Decline - release holds: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Decline: transaction failed for booking id=%s: %v", id, err)
		return nil, notify, err
	}

	booking.Status = domain.StatusDeclined
	notify = s.notify(ctx, domain.NotifyDeclined, booking)

	s.logger.Info("Decline: successfully declined booking id=%s", id)
	return models.FromDomainBooking(booking), notify, nil
}

// Cancel отменяет подтвержденную бронь и освобождает ее ночи.
// Освобождение защищено guard-ом по booking_id: ночи, занятые к этому
// моменту другой бронью, не трогаются.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.BookingResponse, models.NotifyResultResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	var notify models.NotifyResultResponse

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, notify, err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", id, booking.Status)
		return nil, notify, ErrCannotCancel
	}

	nights, err := pricing.EachNight(booking.StartDate, booking.EndDate)
	if err != nil {
		return nil, notify, fmt.Errorf("%w: Cancel - invalid range: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.inventoryRepo.FreeNightsForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Cancel - free nights: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}
		if err := s.holdRepo.ReleaseForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Cancel - release holds: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Cancel: transaction failed for booking id=%s: %v", id, err)
		return nil, notify, err
	}

	booking.Status = domain.StatusCancelled
	notify = s.notify(ctx, domain.NotifyCancelled, booking)

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return models.FromDomainBooking(booking), notify, nil
}

// Delete физически удаляет терминальную заявку. Перед удалением
// снимаются ее холды и (с guard-ом) ее ночи в инвентаре: удаление
// никогда не оставляет осиротевших строк и не трогает чужие.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if !booking.IsTerminal() {
		s.logger.Warn("Delete: booking id=%s not in terminal status, status=%s", id, booking.Status)
		return ErrCannotDelete
	}

	nights, err := pricing.EachNight(booking.StartDate, booking.EndDate)
	if err != nil {
		return fmt.Errorf("%w: Delete - invalid range: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.holdRepo.ReleaseForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Delete - release holds: %v", ErrInternal, err)
		}
		if err := s.inventoryRepo.FreeNightsForBooking(ctx, booking.PropertyID, nights, booking.ID); err != nil {
			return fmt.Errorf("%w: Delete - free nights: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Delete - delete booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Delete: transaction failed for booking id=%s: %v", id, err)
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%s", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// notify отправляет почтовое уведомление после успешного перехода.
// Имя объекта подставляется по справочнику; его недоступность деградирует
// до пустого имени, а не до ошибки операции.
func (s *Service) notify(ctx context.Context, action domain.NotifyAction, booking *domain.Booking) models.NotifyResultResponse {
	propertyName := ""
	property, err := s.catalogRepo.GetProperty(ctx, booking.PropertyID)
	if err != nil {
		if !errors.Is(err, catalogRepo.ErrPropertyNotFound) {
			s.logger.Warn("notify: failed to load property=%d: %v", booking.PropertyID, err)
		}
	} else {
		propertyName = property.Name
	}

	result := s.mailClient.Notify(ctx, string(action), booking, propertyName)
	return models.FromDomainNotifyResult(result)
}
