package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id uuid.UUID) (*models.BookingResponse, models.NotifyResultResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
