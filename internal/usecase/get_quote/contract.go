package get_quote

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// CatalogRepository интерфейс репозитория справочника объектов
type CatalogRepository interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	ListSeasons(ctx context.Context, propertyID int64) ([]domain.Season, error)
	ListTaxBands(ctx context.Context, propertyID int64) ([]domain.TouristTaxBand, error)
}

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	IsRangeAvailable(ctx context.Context, propertyID int64, start, end types.DateString) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
