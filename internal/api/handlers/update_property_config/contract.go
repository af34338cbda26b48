package update_property_config

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	UpdatePropertyConfig(ctx context.Context, propertyID int64, req *models.UpdatePropertyConfigRequest) (*models.PropertyConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
