package bookings

import (
	"context"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, int, error)
	SoftDelete(ctx context.Context, id int64, deletedBy int64) error
}

// CatalogRepository интерфейс справочного репозитория
type CatalogRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	GetSpace(ctx context.Context, id int64) (*domain.Space, error)
	GetStage(ctx context.Context, id int64) (*domain.Stage, error)
	GetDecor(ctx context.Context, id int64) (*domain.DecorPackage, error)
	GetMenu(ctx context.Context, id int64) (*domain.MenuPackage, error)
}

// DepositRepository интерфейс репозитория депозитов
type DepositRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Deposit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
