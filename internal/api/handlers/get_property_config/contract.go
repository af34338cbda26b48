package get_property_config

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	GetPropertyConfig(ctx context.Context, propertyID int64) (*models.PropertyConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
