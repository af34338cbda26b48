package get_availability

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

type AvailabilityService interface {
	ListUnavailableNights(ctx context.Context, propertyID int64, from, to types.DateString) ([]types.DateString, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
