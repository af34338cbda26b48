package rebuild_inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter domain.BookingsFilter
}

func (r *fakeBookingRepo) ListByProperty(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.lastFilter = filter
	return r.bookings, nil
}

type fakeInventoryRepo struct {
	nights map[types.DateString]uuid.UUID
}

func (r *fakeInventoryRepo) ClearRange(_ context.Context, _ int64, from, to types.DateString) error {
	for d := range r.nights {
		if !d.Before(from) && d.Before(to) {
			delete(r.nights, d)
		}
	}
	return nil
}

func (r *fakeInventoryRepo) BlockNights(_ context.Context, _ int64, nights []types.DateString, bookingID uuid.UUID) error {
	for _, n := range nights {
		r.nights[n] = bookingID
	}
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func approvedBooking(start, end types.DateString) *domain.Booking {
	return &domain.Booking{
		ID:         uuid.New(),
		PropertyID: 1,
		StartDate:  start,
		EndDate:    end,
		Status:     domain.StatusApproved,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuilds window from approved bookings", func(t *testing.T) {
		b1 := approvedBooking("2025-08-01", "2025-08-04")
		b2 := approvedBooking("2025-08-10", "2025-08-12")
		bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{b1, b2}}

		// Осиротевшая строка от заявки, которой больше нет
		stale := uuid.New()
		inventory := &fakeInventoryRepo{nights: map[types.DateString]uuid.UUID{
			"2025-08-06": stale,
		}}

		uc := NewUseCase(bookingRepo, inventory, fakeTxManager{}, nopLogger{})
		resp, err := uc.Execute(ctx, &Request{PropertyID: 1, FromDate: "2025-08-01", ToDate: "2025-09-01"})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Bookings)
		assert.Equal(t, 5, resp.NightsBlocked)

		assert.NotContains(t, inventory.nights, types.DateString("2025-08-06"))
		assert.Equal(t, b1.ID, inventory.nights["2025-08-01"])
		assert.Equal(t, b1.ID, inventory.nights["2025-08-03"])
		assert.Equal(t, b2.ID, inventory.nights["2025-08-10"])
		assert.NotContains(t, inventory.nights, types.DateString("2025-08-04"))

		require.NotNil(t, bookingRepo.lastFilter.Status)
		assert.Equal(t, domain.StatusApproved, *bookingRepo.lastFilter.Status)
	})

	t.Run("booking overlapping the window edge is clipped", func(t *testing.T) {
		b := approvedBooking("2025-07-30", "2025-08-03")
		bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{b}}
		inventory := &fakeInventoryRepo{nights: make(map[types.DateString]uuid.UUID)}

		uc := NewUseCase(bookingRepo, inventory, fakeTxManager{}, nopLogger{})
		resp, err := uc.Execute(ctx, &Request{PropertyID: 1, FromDate: "2025-08-01", ToDate: "2025-09-01"})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Bookings)
		assert.Equal(t, 2, resp.NightsBlocked) // 08-01 и 08-02
		assert.NotContains(t, inventory.nights, types.DateString("2025-07-30"))
		assert.NotContains(t, inventory.nights, types.DateString("2025-07-31"))
	})

	t.Run("empty window is invalid", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{},
			&fakeInventoryRepo{nights: make(map[types.DateString]uuid.UUID)},
			fakeTxManager{},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PropertyID: 1, FromDate: "2025-09-01", ToDate: "2025-08-01"})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("invalid property id", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{},
			&fakeInventoryRepo{nights: make(map[types.DateString]uuid.UUID)},
			fakeTxManager{},
			nopLogger{},
		)

		_, err := uc.Execute(ctx, &Request{PropertyID: 0, FromDate: "2025-08-01", ToDate: "2025-09-01"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
