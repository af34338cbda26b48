package release_holds

import (
	"context"

	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

type HoldRepository interface {
	ReleaseRange(ctx context.Context, propertyID int64, from, to types.DateString) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
