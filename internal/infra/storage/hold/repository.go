package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/dbmetrics"
	"github.com/sebschult/FeWo-BookingService/pkg/psqlbuilder"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Repository репозиторий публичных холдов: временная пометка ночи после
// гостевой заявки. Холд живет до expires_at; просроченные строки
// считаются несуществующими при чтении и перезаписываются при вставке,
// фонового чистильщика нет.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListLiveNights возвращает ночи из nights, на которых есть живой холд
// (expires_at > now). Внутри транзакции строки блокируются FOR UPDATE,
// чтобы две параллельные заявки не прошли проверку одновременно.
func (r *Repository) ListLiveNights(ctx context.Context, propertyID int64, nights []types.DateString, now time.Time) ([]types.DateString, error) {
	if len(nights) == 0 {
		return nil, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("night").
		From("public_holds").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"night": nightStrings(nights)}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("night ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveNights - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveNights - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	held := make([]types.DateString, 0)
	for rows.Next() {
		var night string
		if err := rows.Scan(&night); err != nil {
			return nil, fmt.Errorf("%w: ListLiveNights - scan row: %v", ErrScanRow, err)
		}
		held = append(held, types.DateString(night))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLiveNights - rows error: %v", ErrScanRow, err)
	}
	return held, nil
}

// CreateHolds ставит холды на все ночи разом. Upsert перезаписывает
// просроченные строки; живые конфликты вызывающий код обязан исключить
// заранее (ListLiveNights в той же транзакции).
func (r *Repository) CreateHolds(ctx context.Context, propertyID int64, nights []types.DateString, status domain.HoldStatus, bookingRef uuid.UUID, expiresAt time.Time) error {
	if len(nights) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("public_holds").
		Columns("property_id", "night", "status", "expires_at", "booking_ref")
	for _, night := range nights {
		insertBuilder = insertBuilder.Values(propertyID, night.String(), status, expiresAt, bookingRef)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (property_id, night) DO UPDATE SET status = EXCLUDED.status, expires_at = EXCLUDED.expires_at, booking_ref = EXCLUDED.booking_ref").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateHolds - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateHolds - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ReleaseForBooking снимает холды заявки в ее диапазоне ночей.
// Guard по booking_ref; отсутствие строк не является ошибкой.
func (r *Repository) ReleaseForBooking(ctx context.Context, propertyID int64, nights []types.DateString, bookingRef uuid.UUID) error {
	if len(nights) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("public_holds").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"night": nightStrings(nights)}).
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseForBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseForBooking - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ReleaseRange безусловно снимает все холды объекта в диапазоне [from, to).
// Обслуживающая операция оператора; идемпотентна.
func (r *Repository) ReleaseRange(ctx context.Context, propertyID int64, from, to types.DateString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("public_holds").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.GtOrEq{"night": from.String()}).
		Where(squirrel.Lt{"night": to.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseRange - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseRange - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ListLiveDates возвращает ночи с живыми холдами в окне [from, to)
// по возрастанию даты
func (r *Repository) ListLiveDates(ctx context.Context, propertyID int64, from, to types.DateString, now time.Time) ([]types.DateString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("night").
		From("public_holds").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.GtOrEq{"night": from.String()}).
		Where(squirrel.Lt{"night": to.String()}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("night ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]types.DateString, 0)
	for rows.Next() {
		var night string
		if err := rows.Scan(&night); err != nil {
			return nil, fmt.Errorf("%w: ListLiveDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, types.DateString(night))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLiveDates - rows error: %v", ErrScanRow, err)
	}
	return dates, nil
}

// PurgeExpired физически удаляет просроченные холды. Семантику не меняет
// (просроченные и так невидимы), только убирает мусор из таблицы.
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("public_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
	}
	return purged, nil
}

func nightStrings(nights []types.DateString) []string {
	out := make([]string, 0, len(nights))
	for _, n := range nights {
		out = append(out, n.String())
	}
	return out
}
