package deposit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/VH-BookingService/internal/domain"
	"github.com/m04kA/VH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/VH-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с депозитами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория депозитов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает депозит. Вызывается до вставки бронирования в той же
// транзакции: бронирование ссылается на депозит по id.
func (r *Repository) Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("deposits").
		Columns(
			"transaction_id",
			"name",
			"phone",
			"email",
			"amount",
		).
		Values(
			deposit.TransactionID,
			deposit.Name,
			deposit.Phone,
			deposit.Email,
			deposit.Amount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&deposit.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	deposit.CreatedAt = createdAt.Time
	deposit.UpdatedAt = updatedAt.Time

	return deposit, nil
}

// GetByID получает депозит по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Deposit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"transaction_id",
		"name",
		"phone",
		"email",
		"amount",
		"created_at",
		"updated_at",
	).
		From("deposits").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var deposit domain.Deposit
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&deposit.ID,
		&deposit.TransactionID,
		&deposit.Name,
		&deposit.Phone,
		&deposit.Email,
		&deposit.Amount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDepositNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan deposit: %v", ErrScanRow, err)
	}

	deposit.CreatedAt = createdAt.Time
	deposit.UpdatedAt = updatedAt.Time

	return &deposit, nil
}
