package rebuild_inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	ListByProperty(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// InventoryRepository интерфейс репозитория подтвержденного инвентаря
type InventoryRepository interface {
	ClearRange(ctx context.Context, propertyID int64, from, to types.DateString) error
	BlockNights(ctx context.Context, propertyID int64, nights []types.DateString, bookingID uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
