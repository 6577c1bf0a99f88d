package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/VH-BookingService/internal/domain"
	"github.com/m04kA/VH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/VH-BookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// slotUniqueIndex частичный уникальный индекс на (organization_date, shift)
// WHERE NOT deleted - источник истины для инварианта "один слот - одна бронь"
const slotUniqueIndex = "bookings_slot_unique_idx"

var bookingColumns = []string{
	"id",
	"user_id",
	"venue_id",
	"space_id",
	"stage_id",
	"decor_id",
	"menu_id",
	"deposit_id",
	"name",
	"organization_date",
	"shift",
	"accessories",
	"fee",
	"total_amount",
	"amount",
	"deleted",
	"deleted_at",
	"deleted_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - пара
// депозит+бронирование должна фиксироваться атомарно.
// Нарушение уникального индекса слота возвращается как ErrSlotTaken:
// предварительная проверка слота - лишь быстрый путь для дружелюбной
// ошибки, последнее слово за индексом.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	accessories, err := json.Marshal(booking.Accessories)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal accessories: %v", ErrEncodeAccessories, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"venue_id",
			"space_id",
			"stage_id",
			"decor_id",
			"menu_id",
			"deposit_id",
			"name",
			"organization_date",
			"shift",
			"accessories",
			"fee",
			"total_amount",
			"amount",
		).
		Values(
			booking.UserID,
			booking.VenueID,
			booking.SpaceID,
			booking.StageID,
			booking.DecorID,
			booking.MenuID,
			booking.DepositID,
			booking.Name,
			booking.OrganizationDate,
			booking.Shift,
			accessories,
			booking.Fee,
			booking.TotalAmount,
			booking.Amount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Update обновляет бронирование целиком, включая пересчитанную разбивку
// аксессуаров и новый депозит. Разбивка всегда перезаписывается, не патчится.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	accessories, err := json.Marshal(booking.Accessories)
	if err != nil {
		return fmt.Errorf("%w: Update - marshal accessories: %v", ErrEncodeAccessories, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("user_id", booking.UserID).
		Set("venue_id", booking.VenueID).
		Set("space_id", booking.SpaceID).
		Set("stage_id", booking.StageID).
		Set("decor_id", booking.DecorID).
		Set("menu_id", booking.MenuID).
		Set("deposit_id", booking.DepositID).
		Set("name", booking.Name).
		Set("organization_date", booking.OrganizationDate).
		Set("shift", booking.Shift).
		Set("accessories", accessories).
		Set("fee", booking.Fee).
		Set("total_amount", booking.TotalAmount).
		Set("amount", booking.Amount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "deleted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID (включая мягко удаленные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(prefixed("b", bookingColumns)...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ExistsBySlot проверяет занятость слота (дата, смена) среди неудаленных
// бронирований. excludeID исключает из проверки само обновляемое бронирование.
func (r *Repository) ExistsBySlot(ctx context.Context, organizationDate time.Time, shift domain.Shift, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"organization_date": organizationDate,
			"shift":             shift,
			"deleted":           false,
		}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsBySlot - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListByOrganizationDateRange возвращает неудаленные бронирования,
// чьи даты мероприятия попадают в [from, to]. Используется календарем
// занятости: один range-запрос вместо запроса на каждый слот.
func (r *Repository) ListByOrganizationDateRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(prefixed("b", bookingColumns)...).
		From("bookings b").
		Where(squirrel.Eq{"b.deleted": false}).
		Where(squirrel.GtOrEq{"b.organization_date": from}).
		Where(squirrel.LtOrEq{"b.organization_date": to}).
		OrderBy("b.organization_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganizationDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganizationDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter возвращает страницу бронирований по фильтру и общее
// количество подходящих строк. Поиск идет по названию мероприятия,
// зала и пакета меню без учета регистра.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := filterConditions(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings b").
		LeftJoin("venues v ON v.id = b.venue_id").
		LeftJoin("menu_packages m ON m.id = b.menu_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - scan count: %v", ErrScanRow, err)
	}

	selectBuilder := psqlbuilder.Select(prefixed("b", bookingColumns)...).
		From("bookings b").
		LeftJoin("venues v ON v.id = b.venue_id").
		LeftJoin("menu_packages m ON m.id = b.menu_id").
		Where(where).
		Limit(uint64(filter.ItemsPerPage)).
		Offset(uint64(filter.Offset()))

	// Сортировка по цене опциональна, по умолчанию - свежие сверху
	if filter.PriceSort != nil && *filter.PriceSort == domain.PriceSortAsc {
		selectBuilder = selectBuilder.OrderBy("b.amount ASC")
	} else if filter.PriceSort != nil && *filter.PriceSort == domain.PriceSortDesc {
		selectBuilder = selectBuilder.OrderBy("b.amount DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.created_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// SoftDelete помечает бронирование удаленным с меткой времени и автором.
// Физическое удаление этим сервисом не выполняется.
func (r *Repository) SoftDelete(ctx context.Context, id int64, deletedBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("deleted", true).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("deleted_by", deletedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "deleted": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// filterConditions собирает WHERE условия из фильтра списка
func filterConditions(filter domain.BookingsFilter) squirrel.And {
	where := squirrel.And{
		squirrel.Eq{"b.deleted": filter.Deleted},
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"b.name": pattern},
			squirrel.ILike{"v.name": pattern},
			squirrel.ILike{"m.name": pattern},
		})
	}

	if filter.MinPrice != nil {
		where = append(where, squirrel.GtOrEq{"b.amount": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		where = append(where, squirrel.LtOrEq{"b.amount": *filter.MaxPrice})
	}

	if filter.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"b.created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		where = append(where, squirrel.LtOrEq{"b.created_at": *filter.EndDate})
	}

	return where
}

// prefixed добавляет алиас таблицы к списку колонок
func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var accessories []byte
	var createdAt, updatedAt sql.NullTime
	var deletedAt sql.NullTime
	var deletedBy sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.VenueID,
		&booking.SpaceID,
		&booking.StageID,
		&booking.DecorID,
		&booking.MenuID,
		&booking.DepositID,
		&booking.Name,
		&booking.OrganizationDate,
		&booking.Shift,
		&accessories,
		&booking.Fee,
		&booking.TotalAmount,
		&booking.Amount,
		&booking.Deleted,
		&deletedAt,
		&deletedBy,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	if len(accessories) > 0 {
		if err := json.Unmarshal(accessories, &booking.Accessories); err != nil {
			return nil, fmt.Errorf("%w: scanBooking - unmarshal accessories: %v", ErrDecodeAccessories, err)
		}
	}

	if deletedAt.Valid {
		booking.DeletedAt = &deletedAt.Time
	}
	if deletedBy.Valid {
		booking.DeletedBy = &deletedBy.Int64
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isSlotUniqueViolation распознает нарушение уникального индекса слота
func isSlotUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	// Индекс слота - единственное уникальное ограничение таблицы кроме PK,
	// но проверяем имя на случай появления новых ограничений
	return pqErr.Constraint == "" || pqErr.Constraint == slotUniqueIndex
}
