package catalog

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочника объектов
type CatalogRepository interface {
	GetProperty(ctx context.Context, id int64) (*domain.Property, error)
	UpdateProperty(ctx context.Context, id int64, property *domain.Property) (*domain.Property, error)
	ListSeasons(ctx context.Context, propertyID int64) ([]domain.Season, error)
	ReplaceSeasons(ctx context.Context, propertyID int64, seasons []domain.Season) error
	ListTaxBands(ctx context.Context, propertyID int64) ([]domain.TouristTaxBand, error)
	ReplaceTaxBands(ctx context.Context, propertyID int64, bands []domain.TouristTaxBand) error
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
