package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByProperty(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InventoryRepository интерфейс репозитория подтвержденного инвентаря
type InventoryRepository interface {
	IsFreeRange(ctx context.Context, propertyID int64, nights []types.DateString) (bool, error)
	BlockNights(ctx context.Context, propertyID int64, nights []types.DateString, bookingID uuid.UUID) error
	FreeNightsForBooking(ctx context.Context, propertyID int64, nights []types.DateString, bookingID uuid.UUID) error
}

// HoldRepository интерфейс репозитория публичных холдов
type HoldRepository interface {
	ReleaseForBooking(ctx context.Context, propertyID int64, nights []types.DateString, bookingRef uuid.UUID) error
}

// CatalogRepository интерфейс репозитория справочника объектов
type CatalogRepository interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	Notify(ctx context.Context, action string, booking *domain.Booking, propertyName string) domain.NotifyResult
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
