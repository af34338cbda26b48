package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/sebschult/FeWo-BookingService/internal/config"
	"github.com/sebschult/FeWo-BookingService/internal/domain"
	"github.com/sebschult/FeWo-BookingService/pkg/dbmetrics"
	"github.com/sebschult/FeWo-BookingService/pkg/psqlbuilder"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

// Repository репозиторий справочника: объекты, сезоны, бэнды курортного сбора
type Repository struct {
	db          DBExecutor
	seasonOrder string
}

// NewRepository создает новый экземпляр репозитория справочника.
// seasonTieBreak определяет порядок выдачи сезонов и тем самым — какой
// из пересекающихся сезонов выигрывает при расчете цены (первый в списке).
func NewRepository(db DBExecutor, seasonTieBreak string) *Repository {
	order := "start_date ASC, created_at ASC"
	if seasonTieBreak == config.SeasonTieBreakNewest {
		order = "created_at DESC, id DESC"
	}
	return &Repository{db: db, seasonOrder: order}
}

// taxRangeRow формат хранения диапазона MM-DD в jsonb колонке ranges
type taxRangeRow struct {
	StartMD string `json:"start_md"`
	EndMD   string `json:"end_md"`
}

// GetProperty получает объект размещения по ID
func (r *Repository) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"slug",
		"currency",
		"default_nightly_rate",
		"cleaning_fee",
		"max_guests",
		"check_in_hour",
		"check_out_hour",
		"created_at",
		"updated_at",
	).
		From("properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProperty - build select query: %v", ErrBuildQuery, err)
	}

	var property domain.Property
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&property.ID,
		&property.Name,
		&property.Slug,
		&property.Currency,
		&property.DefaultNightlyRate,
		&property.CleaningFee,
		&property.MaxGuests,
		&property.CheckInHour,
		&property.CheckOutHour,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProperty - scan property: %v", ErrScanRow, err)
	}

	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time
	return &property, nil
}

// UpdateProperty обновляет редактируемые поля объекта
func (r *Repository) UpdateProperty(ctx context.Context, id int64, property *domain.Property) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("properties").
		Set("name", property.Name).
		Set("currency", property.Currency).
		Set("default_nightly_rate", property.DefaultNightlyRate).
		Set("cleaning_fee", property.CleaningFee).
		Set("max_guests", property.MaxGuests).
		Set("check_in_hour", property.CheckInHour).
		Set("check_out_hour", property.CheckOutHour).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING slug, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProperty - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&property.Slug, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProperty - execute update: %v", ErrExecQuery, err)
	}

	property.ID = id
	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time
	return property, nil
}

// ListSeasons получает сезоны объекта в порядке применения.
// Первый подходящий сезон из этого списка определяет цену ночи.
func (r *Repository) ListSeasons(ctx context.Context, propertyID int64) ([]domain.Season, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"property_id",
		"name",
		"start_date",
		"end_date",
		"nightly_rate",
		"min_nights",
		"created_at",
		"updated_at",
	).
		From("seasons").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy(r.seasonOrder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSeasons - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSeasons - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	seasons := make([]domain.Season, 0)
	for rows.Next() {
		var (
			season               domain.Season
			startDate, endDate   string
			minNights            sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&season.ID,
			&season.PropertyID,
			&season.Name,
			&startDate,
			&endDate,
			&season.NightlyRate,
			&minNights,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSeasons - scan row: %v", ErrScanRow, err)
		}

		season.StartDate = types.DateString(startDate)
		season.EndDate = types.DateString(endDate)
		if minNights.Valid {
			v := int(minNights.Int64)
			season.MinNights = &v
		}
		season.CreatedAt = createdAt.Time
		season.UpdatedAt = updatedAt.Time

		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSeasons - rows error: %v", ErrScanRow, err)
	}
	return seasons, nil
}

// ReplaceSeasons заменяет все сезоны объекта новым набором.
// Вызывается внутри транзакции lifecycle-слоя (delete + insert атомарны).
func (r *Repository) ReplaceSeasons(ctx context.Context, propertyID int64, seasons []domain.Season) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("seasons").
		Where(squirrel.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSeasons - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSeasons - execute delete: %v", ErrExecQuery, err)
	}

	if len(seasons) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("seasons").
		Columns("property_id", "name", "start_date", "end_date", "nightly_rate", "min_nights")
	for _, season := range seasons {
		var minNights sql.NullInt64
		if season.MinNights != nil {
			minNights = sql.NullInt64{Int64: int64(*season.MinNights), Valid: true}
		}
		insertBuilder = insertBuilder.Values(
			propertyID,
			season.Name,
			season.StartDate.String(),
			season.EndDate.String(),
			season.NightlyRate,
			minNights,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceSeasons - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceSeasons - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// ListTaxBands получает бэнды курортного сбора объекта в порядке применения
func (r *Repository) ListTaxBands(ctx context.Context, propertyID int64) ([]domain.TouristTaxBand, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"property_id",
		"zone",
		"label",
		"currency",
		"rate",
		"ranges",
		"created_at",
		"updated_at",
	).
		From("tax_bands").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("zone ASC, created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListTaxBands - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListTaxBands - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bands := make([]domain.TouristTaxBand, 0)
	for rows.Next() {
		var (
			band                 domain.TouristTaxBand
			rangesRaw            []byte
			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&band.ID,
			&band.PropertyID,
			&band.Zone,
			&band.Label,
			&band.Currency,
			&band.Rate,
			&rangesRaw,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListTaxBands - scan row: %v", ErrScanRow, err)
		}

		var rangeRows []taxRangeRow
		if len(rangesRaw) > 0 {
			if err := json.Unmarshal(rangesRaw, &rangeRows); err != nil {
				return nil, fmt.Errorf("%w: ListTaxBands - decode ranges: %v", ErrScanRow, err)
			}
		}
		band.Ranges = make([]domain.TouristTaxRange, 0, len(rangeRows))
		for _, rr := range rangeRows {
			band.Ranges = append(band.Ranges, domain.TouristTaxRange{
				StartMD: types.MonthDay(rr.StartMD),
				EndMD:   types.MonthDay(rr.EndMD),
			})
		}

		band.CreatedAt = createdAt.Time
		band.UpdatedAt = updatedAt.Time
		bands = append(bands, band)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListTaxBands - rows error: %v", ErrScanRow, err)
	}
	return bands, nil
}

// ReplaceTaxBands заменяет все бэнды объекта новым набором.
// Вызывается внутри транзакции lifecycle-слоя.
func (r *Repository) ReplaceTaxBands(ctx context.Context, propertyID int64, bands []domain.TouristTaxBand) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("tax_bands").
		Where(squirrel.Eq{"property_id": propertyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTaxBands - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTaxBands - execute delete: %v", ErrExecQuery, err)
	}

	if len(bands) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("tax_bands").
		Columns("property_id", "zone", "label", "currency", "rate", "ranges")
	for _, band := range bands {
		rangeRows := make([]taxRangeRow, 0, len(band.Ranges))
		for _, rng := range band.Ranges {
			rangeRows = append(rangeRows, taxRangeRow{
				StartMD: rng.StartMD.String(),
				EndMD:   rng.EndMD.String(),
			})
		}
		rangesRaw, err := json.Marshal(rangeRows)
		if err != nil {
			return fmt.Errorf("%w: ReplaceTaxBands - marshal ranges: %v", ErrEncodeRanges, err)
		}

		insertBuilder = insertBuilder.Values(
			propertyID,
			band.Zone,
			band.Label,
			band.Currency,
			band.Rate,
			rangesRaw,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTaxBands - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTaxBands - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
