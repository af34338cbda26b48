package inventory

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/sebschult/FeWo-BookingService/pkg/dbmetrics"
	"github.com/sebschult/FeWo-BookingService/pkg/psqlbuilder"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Repository репозиторий подтвержденного инвентаря: одна строка — одна
// занятая ночь объекта. PK (property_id, night) исключает двойное
// подтверждение на уровне БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsFreeRange проверяет, что ни одна ночь диапазона не занята.
// Внутри транзакции строки блокируются через FOR UPDATE, чтобы два
// параллельных подтверждения не прошли проверку одновременно.
func (r *Repository) IsFreeRange(ctx context.Context, propertyID int64, nights []types.DateString) (bool, error) {
	if len(nights) == 0 {
		return true, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("night").
		From("inventory_nights").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"night": nightStrings(nights)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsFreeRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: IsFreeRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if rows.Next() {
		return false, rows.Err()
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("%w: IsFreeRange - rows error: %v", ErrScanRow, err)
	}
	return true, nil
}

// BlockNights помечает ночи занятыми заявкой bookingID.
// Upsert: повторное подтверждение той же заявки перезаписывает ее же
// строки и остается идемпотентным.
func (r *Repository) BlockNights(ctx context.Context, propertyID int64, nights []types.DateString, bookingID uuid.UUID) error {
	if len(nights) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("inventory_nights").
		Columns("property_id", "night", "booking_id")
	for _, night := range nights {
		insertBuilder = insertBuilder.Values(propertyID, night.String(), bookingID)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (property_id, night) DO UPDATE SET booking_id = EXCLUDED.booking_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: BlockNights - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BlockNights - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// FreeNightsForBooking освобождает ночи диапазона, занятые именно этой
// заявкой. Guard по booking_id: ночи, перезанятые другой заявкой после
// отмены, не трогаются.
func (r *Repository) FreeNightsForBooking(ctx context.Context, propertyID int64, nights []types.DateString, bookingID uuid.UUID) error {
	if len(nights) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("inventory_nights").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"night": nightStrings(nights)}).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: FreeNightsForBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: FreeNightsForBooking - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ClearRange безусловно очищает инвентарь объекта в диапазоне [from, to).
// Используется только обслуживающей операцией пересборки.
func (r *Repository) ClearRange(ctx context.Context, propertyID int64, from, to types.DateString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("inventory_nights").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.GtOrEq{"night": from.String()}).
		Where(squirrel.Lt{"night": to.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearRange - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearRange - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ListBlockedDates возвращает занятые ночи объекта в окне [from, to)
// по возрастанию даты
func (r *Repository) ListBlockedDates(ctx context.Context, propertyID int64, from, to types.DateString) ([]types.DateString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("night").
		From("inventory_nights").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.GtOrEq{"night": from.String()}).
		Where(squirrel.Lt{"night": to.String()}).
		OrderBy("night ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]types.DateString, 0)
	for rows.Next() {
		var night string
		if err := rows.Scan(&night); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, types.DateString(night))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}
	return dates, nil
}

func nightStrings(nights []types.DateString) []string {
	out := make([]string, 0, len(nights))
	for _, n := range nights {
		out = append(out, n.String())
	}
	return out
}
