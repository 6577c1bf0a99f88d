package pricing

import (
	"context"

	"github.com/m04kA/VH-BookingService/internal/domain"
)

// FurnitureCatalog интерфейс каталога мебели
type FurnitureCatalog interface {
	GetFurniture(ctx context.Context, id int64) (*domain.Furniture, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
