package update_booking

import (
	"context"
	"time"

	"github.com/m04kA/VH-BookingService/internal/domain"
	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
	"github.com/m04kA/VH-BookingService/internal/service/pricing"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// DepositRepository интерфейс репозитория депозитов
type DepositRepository interface {
	Create(ctx context.Context, deposit *domain.Deposit) (*domain.Deposit, error)
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

// PricingCalculator интерфейс калькулятора стоимости
type PricingCalculator interface {
	ComputeAccessories(ctx context.Context, selection domain.AccessorySelection) (*pricing.AccessoryCost, error)
	SplitFee(baseTotal float64) pricing.FeeSplit
}

// AvailabilityGuard интерфейс проверки занятости слота и сроков правки
type AvailabilityGuard interface {
	CheckSlotFree(ctx context.Context, organizationDate time.Time, shift domain.Shift, excludeID *int64) error
	CheckEditWindow(targetDate time.Time) error
}

// BookingReader интерфейс чтения бронирования со связями
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*bookingModels.EnrichedBookingResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionRefGenerator интерфейс генератора платежных референсов
type TransactionRefGenerator interface {
	NewRef() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
