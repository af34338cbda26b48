package availability

import (
	"context"
	"time"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// InventoryRepository интерфейс репозитория подтвержденного инвентаря
type InventoryRepository interface {
	IsFreeRange(ctx context.Context, propertyID int64, nights []types.DateString) (bool, error)
	ListBlockedDates(ctx context.Context, propertyID int64, from, to types.DateString) ([]types.DateString, error)
}

// HoldRepository интерфейс репозитория публичных холдов
type HoldRepository interface {
	ListLiveNights(ctx context.Context, propertyID int64, nights []types.DateString, now time.Time) ([]types.DateString, error)
	ListLiveDates(ctx context.Context, propertyID int64, from, to types.DateString, now time.Time) ([]types.DateString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// nowFunc позволяет подменять часы в тестах
type nowFunc func() time.Time
