package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	catalogstorage "github.com/sebschult/FeWo-BookingService/internal/infra/storage/catalog"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Фиксированное "сейчас" всех тестов: заезды берутся относительно него
var testNow = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepo struct {
	created []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.created = append(r.created, booking)
	return booking, nil
}

type fakeCatalogRepo struct {
	property *domain.Property
	seasons  []domain.Season
	bands    []domain.TouristTaxBand
}

func (r *fakeCatalogRepo) GetProperty(_ context.Context, id int64) (*domain.Property, error) {
	if r.property == nil || r.property.ID != id {
		return nil, catalogstorage.ErrPropertyNotFound
	}
	return r.property, nil
}

func (r *fakeCatalogRepo) ListSeasons(_ context.Context, _ int64) ([]domain.Season, error) {
	return r.seasons, nil
}

func (r *fakeCatalogRepo) ListTaxBands(_ context.Context, _ int64) ([]domain.TouristTaxBand, error) {
	return r.bands, nil
}

type fakeInventoryRepo struct {
	blocked map[types.DateString]bool
}

func (r *fakeInventoryRepo) IsFreeRange(_ context.Context, _ int64, nights []types.DateString) (bool, error) {
	for _, n := range nights {
		if r.blocked[n] {
			return false, nil
		}
	}
	return true, nil
}

type holdRow struct {
	status     domain.HoldStatus
	expiresAt  time.Time
	bookingRef uuid.UUID
}

type fakeHoldRepo struct {
	holds map[types.DateString]holdRow
}

func newFakeHoldRepo() *fakeHoldRepo {
	return &fakeHoldRepo{holds: make(map[types.DateString]holdRow)}
}

func (r *fakeHoldRepo) ListLiveNights(_ context.Context, _ int64, nights []types.DateString, now time.Time) ([]types.DateString, error) {
	live := make([]types.DateString, 0)
	for _, n := range nights {
		if row, ok := r.holds[n]; ok && row.expiresAt.After(now) {
			live = append(live, n)
		}
	}
	return live, nil
}

func (r *fakeHoldRepo) CreateHolds(_ context.Context, _ int64, nights []types.DateString, status domain.HoldStatus, bookingRef uuid.UUID, expiresAt time.Time) error {
	for _, n := range nights {
		r.holds[n] = holdRow{status: status, expiresAt: expiresAt, bookingRef: bookingRef}
	}
	return nil
}

type fakeMailClient struct {
	actions []string
}

func (c *fakeMailClient) Notify(_ context.Context, action string, _ *domain.Booking, _ string) domain.NotifyResult {
	c.actions = append(c.actions, action)
	return domain.NotifyResult{OK: true}
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	catalog   *fakeCatalogRepo
	inventory *fakeInventoryRepo
	holds     *fakeHoldRepo
	mail      *fakeMailClient
	clock     *fakeTimeProvider
}

func newFixture() *fixture {
	minNights := 3
	catalog := &fakeCatalogRepo{
		property: &domain.Property{
			ID:                 1,
			Name:               "Haus Seeblick",
			Currency:           "EUR",
			DefaultNightlyRate: 110,
			CleaningFee:        50,
			MaxGuests:          4,
		},
		seasons: []domain.Season{
			{
				ID:          10,
				PropertyID:  1,
				Name:        "Hauptsaison",
				StartDate:   "2025-07-01",
				EndDate:     "2025-09-01",
				NightlyRate: 140,
				MinNights:   &minNights,
			},
		},
		bands: []domain.TouristTaxBand{
			{
				ID:    20,
				Zone:  "kurzone-1",
				Label: "Kurtaxe",
				Rate:  2.5,
				Ranges: []domain.TouristTaxRange{
					{StartMD: "05-01", EndMD: "10-01"},
				},
			},
		},
	}

	f := &fixture{
		bookings:  &fakeBookingRepo{},
		catalog:   catalog,
		inventory: &fakeInventoryRepo{blocked: make(map[types.DateString]bool)},
		holds:     newFakeHoldRepo(),
		mail:      &fakeMailClient{},
		clock:     &fakeTimeProvider{now: testNow},
	}

	f.uc = NewUseCase(
		f.bookings,
		f.catalog,
		f.inventory,
		f.holds,
		f.mail,
		fakeTxManager{},
		72*time.Hour,
		nopLogger{},
	)
	f.uc.timeProvider = f.clock
	return f
}

func validRequest() *Request {
	return &Request{
		PropertyID: 1,
		StartDate:  "2025-08-01",
		EndDate:    "2025-08-04",
		Adults:     2,
		Children:   1,
		Contact: ContactRequest{
			Name:  "Anna Schmidt",
			Email: "anna@example.com",
		},
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates booking with server-side price snapshot", func(t *testing.T) {
		f := newFixture()

		resp, err := f.uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusRequested), resp.Status)
		assert.Equal(t, 3, resp.Summary.Nights)
		assert.Equal(t, 420.0, resp.Summary.NightlyTotal) // 3 * 140
		assert.Equal(t, 50.0, resp.Summary.CleaningFee)
		assert.Equal(t, 15.0, resp.Summary.TouristTax) // 3 ночи * 2 взрослых * 2.50
		assert.Equal(t, 485.0, resp.Summary.GrandTotal)
		assert.Equal(t, "EUR", resp.Summary.Currency)
		assert.Equal(t, testNow.Add(72*time.Hour), resp.HoldUntil)
		assert.True(t, resp.Notify.OK)
		assert.Equal(t, []string{"requested"}, f.mail.actions)

		require.Len(t, f.bookings.created, 1)
		created := f.bookings.created[0]
		assert.Equal(t, domain.StatusRequested, created.Status)
		require.NotNil(t, created.Summary)
		assert.Equal(t, 485.0, created.Summary.GrandTotal)

		require.Len(t, f.holds.holds, 3)
		for _, night := range []types.DateString{"2025-08-01", "2025-08-02", "2025-08-03"} {
			row, ok := f.holds.holds[night]
			require.True(t, ok, "missing hold for %s", night)
			assert.Equal(t, domain.HoldStatusRequested, row.status)
			assert.Equal(t, created.ID, row.bookingRef)
			assert.Equal(t, testNow.Add(72*time.Hour), row.expiresAt)
		}
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.PropertyID = 99

		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.Adults = 3
		req.Children = 2

		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrTooManyGuests)
	})

	t.Run("seasonal minimum nights", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.EndDate = "2025-08-03" // 2 ночи при минимуме 3

		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrStayTooShort)
	})

	t.Run("start in the past", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.StartDate = "2025-07-10"
		req.EndDate = "2025-07-14"

		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("start today is allowed", func(t *testing.T) {
		f := newFixture()
		req := validRequest()
		req.StartDate = "2025-07-15"
		req.EndDate = "2025-07-18"

		_, err := f.uc.Execute(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("confirmed night blocks the request", func(t *testing.T) {
		f := newFixture()
		f.inventory.blocked["2025-08-02"] = true

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrRangeAlreadyConfirmed)
		assert.Empty(t, f.bookings.created)
		assert.Empty(t, f.mail.actions)
	})

	t.Run("live hold blocks the request", func(t *testing.T) {
		f := newFixture()
		f.holds.holds["2025-08-03"] = holdRow{
			status:     domain.HoldStatusRequested,
			expiresAt:  testNow.Add(time.Hour),
			bookingRef: uuid.New(),
		}

		_, err := f.uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrRangeAlreadyRequested)
		assert.Empty(t, f.bookings.created)
	})

	t.Run("expired hold is overwritten", func(t *testing.T) {
		f := newFixture()
		stale := uuid.New()
		f.holds.holds["2025-08-02"] = holdRow{
			status:     domain.HoldStatusRequested,
			expiresAt:  testNow.Add(-time.Minute),
			bookingRef: stale,
		}

		resp, err := f.uc.Execute(ctx, validRequest())
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusRequested), resp.Status)

		row := f.holds.holds["2025-08-02"]
		assert.NotEqual(t, stale, row.bookingRef)
		assert.Equal(t, testNow.Add(72*time.Hour), row.expiresAt)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Request)
			errIs  error
		}{
			{
				name:   "no adults",
				mutate: func(r *Request) { r.Adults = 0 },
				errIs:  ErrInvalidInput,
			},
			{
				name:   "negative children",
				mutate: func(r *Request) { r.Children = -1 },
				errIs:  ErrInvalidInput,
			},
			{
				name:   "missing contact name",
				mutate: func(r *Request) { r.Contact.Name = "  " },
				errIs:  ErrInvalidInput,
			},
			{
				name:   "malformed email",
				mutate: func(r *Request) { r.Contact.Email = "anna.example.com" },
				errIs:  ErrInvalidInput,
			},
			{
				name:   "bad date format",
				mutate: func(r *Request) { r.StartDate = "01.08.2025" },
				errIs:  ErrInvalidInput,
			},
			{
				name:   "checkout before checkin",
				mutate: func(r *Request) { r.StartDate, r.EndDate = r.EndDate, r.StartDate },
				errIs:  ErrInvalidRange,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture()
				req := validRequest()
				tt.mutate(req)

				_, err := f.uc.Execute(ctx, req)
				assert.ErrorIs(t, err, tt.errIs)
				assert.Empty(t, f.bookings.created)
			})
		}
	})
}

func TestValidateRange(t *testing.T) {
	t.Run("too long stay", func(t *testing.T) {
		_, err := validateRange("2025-08-01", "2025-11-15", testNow)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("maximum allowed stay", func(t *testing.T) {
		end, err := types.DateString("2025-08-01").AddDays(domain.MaxStayNights)
		require.NoError(t, err)

		n, err := validateRange("2025-08-01", end, testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.MaxStayNights, n)
	})
}
