package rebuild_inventory

import (
	"context"

	rebuildInventory "github.com/sebschult/FeWo-BookingService/internal/usecase/rebuild_inventory"
)

type RebuildInventoryUseCase interface {
	Execute(ctx context.Context, req *rebuildInventory.Request) (*rebuildInventory.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
