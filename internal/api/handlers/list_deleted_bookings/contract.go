package list_deleted_bookings

import (
	"context"

	bookingModels "github.com/m04kA/VH-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListDeleted(ctx context.Context, req *bookingModels.ListBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
