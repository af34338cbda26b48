package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория справочника объектов
type CatalogRepository interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListSeasons(ctx context.Context, propertyID int64) ([]domain.Season, error)
	ListTaxBands(ctx context.Context, propertyID int64) ([]domain.TouristTaxBand, error)
}

// InventoryRepository интерфейс репозитория подтвержденного инвентаря
type InventoryRepository interface {
	IsFreeRange(ctx context.Context, propertyID int64, nights []types.DateString) (bool, error)
}

// HoldRepository интерфейс репозитория публичных холдов
type HoldRepository interface {
	ListLiveNights(ctx context.Context, propertyID int64, nights []types.DateString, now time.Time) ([]types.DateString, error)
	CreateHolds(ctx context.Context, propertyID int64, nights []types.DateString, status domain.HoldStatus, bookingRef uuid.UUID, expiresAt time.Time) error
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	Notify(ctx context.Context, action string, booking *domain.Booking, propertyName string) domain.NotifyResult
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
