package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/dbmetrics"
	"github.com/sebschult/FeWo-BookingService/pkg/psqlbuilder"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"property_id",
	"start_date",
	"end_date",
	"adults",
	"children",
	"status",
	"contact_name",
	"contact_email",
	"contact_phone",
	"address_street",
	"address_zip",
	"address_city",
	"address_country",
	"message",
	"summary_nights",
	"summary_nightly_total",
	"summary_cleaning_fee",
	"summary_tourist_tax",
	"summary_grand_total",
	"summary_currency",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую заявку. ID (uuid) генерирует вызывающий код.
// Если в контексте есть активная транзакция, запись идет в ней —
// так заявка и холды на ее ночи фиксируются атомарно.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Summary опционален: без клиентского расчета пишем NULL-ы
	var (
		sumNights       sql.NullInt64
		sumNightlyTotal sql.NullFloat64
		sumCleaningFee  sql.NullFloat64
		sumTouristTax   sql.NullFloat64
		sumGrandTotal   sql.NullFloat64
		sumCurrency     sql.NullString
	)
	if b.Summary != nil {
		sumNights = sql.NullInt64{Int64: int64(b.Summary.Nights), Valid: true}
		sumNightlyTotal = sql.NullFloat64{Float64: b.Summary.NightlyTotal, Valid: true}
		sumCleaningFee = sql.NullFloat64{Float64: b.Summary.CleaningFee, Valid: true}
		sumTouristTax = sql.NullFloat64{Float64: b.Summary.TouristTax, Valid: true}
		sumGrandTotal = sql.NullFloat64{Float64: b.Summary.GrandTotal, Valid: true}
		sumCurrency = sql.NullString{String: b.Summary.Currency, Valid: true}
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"property_id",
			"start_date",
			"end_date",
			"adults",
			"children",
			"status",
			"contact_name",
			"contact_email",
			"contact_phone",
			"address_street",
			"address_zip",
			"address_city",
			"address_country",
			"message",
			"summary_nights",
			"summary_nightly_total",
			"summary_cleaning_fee",
			"summary_tourist_tax",
			"summary_grand_total",
			"summary_currency",
		).
		Values(
			b.ID,
			b.PropertyID,
			b.StartDate.String(),
			b.EndDate.String(),
			b.Adults,
			b.Children,
			b.Status,
			b.Contact.Name,
			b.Contact.Email,
			b.Contact.Phone,
			b.Contact.Address.Street,
			b.Contact.Address.Zip,
			b.Contact.Address.City,
			b.Contact.Address.Country,
			b.Message,
			sumNights,
			sumNightlyTotal,
			sumCleaningFee,
			sumTouristTax,
			sumGrandTotal,
			sumCurrency,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// ListByProperty получает заявки объекта с фильтрацией по статусу и
// пересечению с окном дат (startDate < to AND endDate > from).
// Формат YYYY-MM-DD сравнивается в БД лексикографически корректно.
func (r *Repository) ListByProperty(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"property_id": filter.PropertyID}).
		OrderBy("start_date ASC, created_at ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_date": filter.ToDate.String()})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_date": filter.FromDate.String()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProperty - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - rows error: %v", ErrScanRow, err)
	}
	return bookings, nil
}

// UpdateStatus обновляет статус заявки
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Delete физически удаляет заявку. Освобождение инвентаря и холдов —
// ответственность lifecycle-менеджера, не репозитория.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// scanBooking сканирует одну строку в domain.Booking.
// Подходит и для *sql.Row, и для *sql.Rows.
func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var (
		b         domain.Booking
		startDate string
		endDate   string

		sumNights       sql.NullInt64
		sumNightlyTotal sql.NullFloat64
		sumCleaningFee  sql.NullFloat64
		sumTouristTax   sql.NullFloat64
		sumGrandTotal   sql.NullFloat64
		sumCurrency     sql.NullString

		createdAt, updatedAt sql.NullTime
	)

	err := scan(
		&b.ID,
		&b.PropertyID,
		&startDate,
		&endDate,
		&b.Adults,
		&b.Children,
		&b.Status,
		&b.Contact.Name,
		&b.Contact.Email,
		&b.Contact.Phone,
		&b.Contact.Address.Street,
		&b.Contact.Address.Zip,
		&b.Contact.Address.City,
		&b.Contact.Address.Country,
		&b.Message,
		&sumNights,
		&sumNightlyTotal,
		&sumCleaningFee,
		&sumTouristTax,
		&sumGrandTotal,
		&sumCurrency,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.StartDate = types.DateString(startDate)
	b.EndDate = types.DateString(endDate)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	if sumNights.Valid {
		b.Summary = &domain.PriceSummary{
			Nights:       int(sumNights.Int64),
			NightlyTotal: sumNightlyTotal.Float64,
			CleaningFee:  sumCleaningFee.Float64,
			TouristTax:   sumTouristTax.Float64,
			GrandTotal:   sumGrandTotal.Float64,
			Currency:     sumCurrency.String,
		}
	}
	return &b, nil
}
